package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jpcodeman/partygame/internal/auth"
	"github.com/jpcodeman/partygame/internal/common/clock"
	"github.com/jpcodeman/partygame/internal/common/uuid"
	"github.com/jpcodeman/partygame/internal/config"
	"github.com/jpcodeman/partygame/internal/handlers/api"
	"github.com/jpcodeman/partygame/internal/handlers/discord"
	"github.com/jpcodeman/partygame/internal/random"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
	gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"
	teamRepo "github.com/jpcodeman/partygame/internal/repositories/team"
	"github.com/jpcodeman/partygame/internal/rounds"
	datasetService "github.com/jpcodeman/partygame/internal/services/dataset"
	gameService "github.com/jpcodeman/partygame/internal/services/game"
	hostService "github.com/jpcodeman/partygame/internal/services/host"
	"github.com/jpcodeman/partygame/internal/services/messaging"
	"github.com/jpcodeman/partygame/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	shutdownTracing, err := telemetry.Setup(ctx, &telemetry.Config{Endpoint: cfg.OTelEndpoint})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	datasets, err := datasetRepo.Open(cfg.DatasetDB)
	if err != nil {
		return fmt.Errorf("failed to open dataset store: %w", err)
	}
	defer datasets.Close()

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create game repository: %w", err)
	}
	teams, err := teamRepo.NewRedis(&teamRepo.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create team repository: %w", err)
	}

	rnd := random.New(&random.Config{Seed: cfg.Seed})
	generator, err := rounds.New(&rounds.Config{Random: rnd})
	if err != nil {
		return fmt.Errorf("failed to create round generator: %w", err)
	}

	clk := clock.New()
	ids := uuid.New()

	gameSvc, err := gameService.New(&gameService.Config{
		GameRepo:       games,
		TeamRepo:       teams,
		DatasetRepo:    datasets,
		RoundGenerator: generator,
		Clock:          clk,
		UUIDGenerator:  ids,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	hostSvc, err := hostService.New(&hostService.Config{GameRepo: games})
	if err != nil {
		return fmt.Errorf("failed to create host service: %w", err)
	}

	datasetSvc, err := datasetService.New(&datasetService.Config{
		DatasetRepo:   datasets,
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		return fmt.Errorf("failed to create dataset service: %w", err)
	}

	hash, err := cfg.PasswordHash()
	if err != nil {
		return err
	}
	authenticator, err := auth.New(&auth.Config{
		Secret:       []byte(cfg.JWTSecret),
		PasswordHash: hash,
		TokenTTL:     cfg.TokenTTL,
		Clock:        clk,
	})
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %w", err)
	}

	apiServer, err := api.New(&api.Config{
		GameService:    gameSvc,
		HostService:    hostSvc,
		DatasetService: datasetSvc,
		Auth:           authenticator,
		PublicURL:      cfg.PublicURL,
		EnforceHostKey: cfg.EnforceHostKey,
		AllowedOrigin:  cfg.AllowedOrigin,
		Timeout:        cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if cfg.DiscordEnabled() {
		msgSvc, err := messaging.New(&messaging.Config{Random: rnd})
		if err != nil {
			return fmt.Errorf("failed to create messaging service: %w", err)
		}
		bot, err := discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.DiscordAppID,
			GuildID:          cfg.DiscordGuildID,
			GameService:      gameSvc,
			MessagingService: msgSvc,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return err
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Warn().Err(err).Msg("failed to stop Discord bot")
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apiServer,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("enforce_host_key", cfg.EnforceHostKey).Msg("starting partygame server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
