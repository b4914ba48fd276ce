package host

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpcodeman/partygame/internal/models"
	gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"
)

const keyBytes = 32

var tracer = otel.Tracer("github.com/jpcodeman/partygame/internal/services/host")

type service struct {
	gameRepo gameRepo.Repository
	newKey   func() (string, error)
}

// New creates a new host service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	return &service{
		gameRepo: cfg.GameRepo,
		newKey:   newHostKey,
	}, nil
}

func (s *service) Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error) {
	ctx, span := tracer.Start(ctx, "host.Acquire", trace.WithAttributes(attribute.String("game.code", input.GameCode)))
	defer span.End()

	// generated up front so the update callback stays free of I/O
	fresh, err := s.newKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate host key: %w", err)
	}

	var key string
	acquired := false
	_, err = s.update(ctx, input.GameCode, func(game *models.Game) error {
		acquired = false
		if input.ExistingKey != "" && keysMatch(game.HostKey, input.ExistingKey) {
			key = game.HostKey
			return nil
		}
		if game.IsHosted() {
			return ErrAlreadyHosted
		}
		game.HostKey = fresh
		key = fresh
		acquired = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if acquired {
		log.Info().Str("game_code", normalize(input.GameCode)).Msg("host lock acquired")
	}
	return &AcquireOutput{HostKey: key}, nil
}

func (s *service) Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	ctx, span := tracer.Start(ctx, "host.Release", trace.WithAttributes(attribute.String("game.code", input.GameCode)))
	defer span.End()

	_, err := s.update(ctx, input.GameCode, func(game *models.Game) error {
		if !keysMatch(game.HostKey, input.HostKey) {
			return ErrInvalidKey
		}
		game.HostKey = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("game_code", normalize(input.GameCode)).Msg("host lock released")
	return &ReleaseOutput{Released: true}, nil
}

func (s *service) ForceRelease(ctx context.Context, input *ForceReleaseInput) (*ForceReleaseOutput, error) {
	ctx, span := tracer.Start(ctx, "host.ForceRelease", trace.WithAttributes(attribute.String("game.code", input.GameCode)))
	defer span.End()

	wasHosted := false
	_, err := s.update(ctx, input.GameCode, func(game *models.Game) error {
		wasHosted = game.IsHosted()
		game.HostKey = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Warn().
		Str("game_code", normalize(input.GameCode)).
		Bool("was_hosted", wasHosted).
		Msg("host lock force released")
	return &ForceReleaseOutput{WasHosted: wasHosted}, nil
}

// Verify reports ErrHostKeyRequired for an empty key and ErrInvalidKey for
// a key that does not match the stored lock, including when no lock is held
func (s *service) Verify(ctx context.Context, input *VerifyInput) error {
	if input.HostKey == "" {
		return ErrHostKeyRequired
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameCode: normalize(input.GameCode)})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to get game: %w", err)
	}
	if !keysMatch(game.HostKey, input.HostKey) {
		return ErrInvalidKey
	}
	return nil
}

func (s *service) update(ctx context.Context, code string, fn func(*models.Game) error) (*models.Game, error) {
	game, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameCode: normalize(code),
		Update:   fn,
	})
	if errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, ErrGameNotFound
	}
	return game, err
}

// keysMatch compares in constant time. An empty stored key never matches.
func keysMatch(stored, given string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func newHostKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
