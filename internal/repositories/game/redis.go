package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jpcodeman/partygame/internal/models"
	teamRepo "github.com/jpcodeman/partygame/internal/repositories/team"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix         = "game:"
	datasetGamesKeyPrefix = "dataset_games:"

	maxTxRetries = 5
)

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrGameCodeTaken is returned when a new game's code is already in use
	ErrGameCodeTaken = errors.New("game code already in use")

	// ErrConflict is returned when an update kept losing to concurrent writers
	ErrConflict = errors.New("game was modified concurrently")
)

func gameKey(code string) string {
	return gameKeyPrefix + code
}

// guessesKey is a hash of team ID to guess for one round
func guessesKey(code string, level models.Level, round int) string {
	return fmt.Sprintf("%s%s:guesses:%d:%d", gameKeyPrefix, code, level, round)
}

func datasetGamesKey(datasetID string) string {
	return datasetGamesKeyPrefix + datasetID
}

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateGame persists a new game to Redis
func (r *redisRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	g := input.Game
	if g.Code == "" {
		return errors.New("game code cannot be empty")
	}

	gameJSON, err := encodeGame(g)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, gameKey(g.Code), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	if !ok {
		return ErrGameCodeTaken
	}

	if g.DatasetID != "" {
		err = r.client.ZAdd(ctx, datasetGamesKey(g.DatasetID), redis.Z{
			Score:  float64(g.CreatedAt.UnixNano()),
			Member: g.Code,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to index game: %w", err)
		}
	}

	return nil
}

// GetGame retrieves a game by code from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameCode == "" {
		return nil, errors.New("input and game code cannot be empty")
	}

	g, err := loadGame(ctx, r.client, input.GameCode)
	if err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(g.Rounds))
	for i, round := range g.Rounds {
		cmds[i] = pipe.HGetAll(ctx, guessesKey(g.Code, round.Level, round.RoundNumber))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get guesses: %w", err)
	}

	for i, round := range g.Rounds {
		if err := hydrate(round, cmds[i].Val()); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// UpdateGame applies input.Update inside an optimistic transaction
func (r *redisRepository) UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error) {
	if input == nil || input.GameCode == "" || input.Update == nil {
		return nil, errors.New("input, game code and update cannot be empty")
	}

	key := gameKey(input.GameCode)
	var updated *models.Game

	err := r.withRetry(ctx, func(tx *redis.Tx) error {
		g, err := loadGame(ctx, tx, input.GameCode)
		if err != nil {
			return err
		}
		if err := input.Update(g); err != nil {
			return err
		}

		gameJSON, err := encodeGame(g)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})
		if err == nil {
			updated = g
		}
		return err
	}, key)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RecordGuess writes one field of the round's guess hash. Only the game key
// is watched, so a finalize or advance racing the guess forces a retry while
// other teams' guesses do not.
func (r *redisRepository) RecordGuess(ctx context.Context, input *RecordGuessInput) (*models.Guess, error) {
	if input == nil || input.GameCode == "" || input.Record == nil {
		return nil, errors.New("input, game code and record cannot be empty")
	}

	key := gameKey(input.GameCode)
	var recorded *models.Guess

	err := r.withRetry(ctx, func(tx *redis.Tx) error {
		g, err := loadGame(ctx, tx, input.GameCode)
		if err != nil {
			return err
		}
		round, guess, err := input.Record(g)
		if err != nil {
			return err
		}

		guessJSON, err := guess.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal guess: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, guessesKey(g.Code, round.Level, round.RoundNumber), guess.TeamID, guessJSON)
			return nil
		})
		if err == nil {
			recorded = guess
		}
		return err
	}, key)
	if err != nil {
		return nil, err
	}

	return recorded, nil
}

// errRoundMoved restarts a finalize whose watched keys went stale
var errRoundMoved = errors.New("current round changed")

// FinalizeRound watches the game and the current round's guesses, runs the
// scoring step and writes the game, guesses and teams in one MULTI
func (r *redisRepository) FinalizeRound(ctx context.Context, input *FinalizeRoundInput) (*FinalizeRoundOutput, error) {
	if input == nil || input.GameCode == "" || input.Score == nil {
		return nil, errors.New("input, game code and score cannot be empty")
	}

	for i := 0; i < maxTxRetries; i++ {
		current, err := loadGame(ctx, r.client, input.GameCode)
		if err != nil {
			return nil, err
		}
		gKey := gameKey(input.GameCode)
		rKey := guessesKey(input.GameCode, current.CurrentLevel, current.CurrentRound)

		var out *FinalizeRoundOutput
		err = r.client.Watch(ctx, func(tx *redis.Tx) error {
			g, err := loadGame(ctx, tx, input.GameCode)
			if err != nil {
				return err
			}
			if g.CurrentLevel != current.CurrentLevel || g.CurrentRound != current.CurrentRound {
				return errRoundMoved
			}
			round, err := g.Current()
			if err != nil {
				return err
			}

			fields, err := tx.HGetAll(ctx, rKey).Result()
			if err != nil {
				return fmt.Errorf("failed to get guesses: %w", err)
			}
			if err := hydrate(round, fields); err != nil {
				return err
			}

			teams, err := loadTeams(ctx, tx, g.ID)
			if err != nil {
				return err
			}

			if err := input.Score(g, round, teams); err != nil {
				return err
			}

			gameJSON, err := encodeGame(g)
			if err != nil {
				return err
			}
			guessFields := make(map[string]any, len(round.Guesses))
			for _, guess := range round.Guesses {
				data, err := guess.MarshalJSON()
				if err != nil {
					return fmt.Errorf("failed to marshal guess: %w", err)
				}
				guessFields[guess.TeamID] = data
			}
			teamValues := make(map[string][]byte, len(teams))
			for _, t := range teams {
				data, err := json.Marshal(t)
				if err != nil {
					return fmt.Errorf("failed to marshal team: %w", err)
				}
				teamValues[teamRepo.Key(t.ID)] = data
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, gKey, gameJSON, 0)
				if len(guessFields) > 0 {
					pipe.HSet(ctx, rKey, guessFields)
				}
				for k, v := range teamValues {
					pipe.Set(ctx, k, v, 0)
				}
				return nil
			})
			if err == nil {
				out = &FinalizeRoundOutput{Game: g, Teams: teams}
			}
			return err
		}, gKey, rKey)

		if errors.Is(err, redis.TxFailedErr) || errors.Is(err, errRoundMoved) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	return nil, ErrConflict
}

// ListGamesByDataset retrieves a dataset's games, newest first. Rounds
// carry no guesses.
func (r *redisRepository) ListGamesByDataset(ctx context.Context, input *ListGamesByDatasetInput) ([]*models.Game, error) {
	if input == nil || input.DatasetID == "" {
		return nil, errors.New("input and dataset ID cannot be empty")
	}

	codes, err := r.client.ZRevRange(ctx, datasetGamesKey(input.DatasetID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset games: %w", err)
	}
	if len(codes) == 0 {
		return []*models.Game{}, nil
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = gameKey(code)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	games := make([]*models.Game, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var g models.Game
		if err := json.Unmarshal([]byte(s), &g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		games = append(games, &g)
	}

	return games, nil
}

// withRetry runs fn in a WATCH transaction on keys, retrying when the
// transaction is aborted by a concurrent write
func (r *redisRepository) withRetry(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

// reader is satisfied by both *redis.Client and *redis.Tx
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// loadGame reads and decodes a game without its guesses
func loadGame(ctx context.Context, c reader, code string) (*models.Game, error) {
	gameJSON, err := c.Get(ctx, gameKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var g models.Game
	if err := json.Unmarshal([]byte(gameJSON), &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}

func loadTeams(ctx context.Context, c reader, gameID string) ([]*models.Team, error) {
	ids, err := c.SMembers(ctx, teamRepo.GameTeamsKey(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get team IDs: %w", err)
	}

	teams := make([]*models.Team, 0, len(ids))
	for _, id := range ids {
		data, err := c.Get(ctx, teamRepo.Key(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
		var t models.Team
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team: %w", err)
		}
		teams = append(teams, &t)
	}
	return teams, nil
}

// hydrate decodes a round's guess hash into the round in submission order.
// Hash fields come back unordered, so equal timestamps fall back to team ID
// to keep reads of the same round stable.
func hydrate(round *models.Round, fields map[string]string) error {
	round.Guesses = round.Guesses[:0]
	for _, data := range fields {
		guess, err := models.DecodeGuess(round.Level, []byte(data))
		if err != nil {
			return fmt.Errorf("failed to unmarshal guess: %w", err)
		}
		round.Guesses = append(round.Guesses, guess)
	}
	sort.SliceStable(round.Guesses, func(i, j int) bool {
		if round.Guesses[i].Timestamp.Equal(round.Guesses[j].Timestamp) {
			return round.Guesses[i].TeamID < round.Guesses[j].TeamID
		}
		return round.Guesses[i].Timestamp.Before(round.Guesses[j].Timestamp)
	})
	return nil
}

// encodeGame marshals a game without guesses; those live in per-round hashes
func encodeGame(g *models.Game) ([]byte, error) {
	cp := *g
	cp.Rounds = make([]*models.Round, len(g.Rounds))
	for i, round := range g.Rounds {
		rc := *round
		rc.Guesses = nil
		cp.Rounds[i] = &rc
	}

	data, err := json.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game: %w", err)
	}
	return data, nil
}
