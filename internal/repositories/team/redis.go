package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	teamKeyPrefix      = "team:"
	gameTeamsKeyPrefix = "game_teams:"
	teamNamesKeyPrefix = "game_team_names:"

	maxTxRetries = 5
)

// ErrTeamNotFound is returned when a team is not found
var ErrTeamNotFound = errors.New("team not found")

// Key returns the Redis key holding a team record
func Key(teamID string) string {
	return teamKeyPrefix + teamID
}

// GameTeamsKey returns the Redis set of team IDs in a game
func GameTeamsKey(gameID string) string {
	return gameTeamsKeyPrefix + gameID
}

func namesKey(gameID string) string {
	return teamNamesKeyPrefix + gameID
}

// NormalizeName folds a team name for uniqueness checks
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Config holds configuration for the Redis team repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed team repository
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

// CreateTeam claims the team's name in the game and stores the team. The
// name index is watched so concurrent joins with the same name resolve to
// one team.
func (r *redisRepository) CreateTeam(ctx context.Context, input *CreateTeamInput) (*CreateTeamOutput, error) {
	if input == nil || input.Team == nil {
		return nil, errors.New("input and team cannot be nil")
	}
	t := input.Team
	if t.ID == "" || t.GameID == "" {
		return nil, errors.New("team ID and game ID cannot be empty")
	}

	teamJSON, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal team: %w", err)
	}

	names := namesKey(t.GameID)
	folded := NormalizeName(t.Name)
	var existingID string

	txf := func(tx *redis.Tx) error {
		id, err := tx.HGet(ctx, names, folded).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if id != "" {
			existingID = id
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, names, folded, t.ID)
			pipe.Set(ctx, Key(t.ID), teamJSON, 0)
			pipe.SAdd(ctx, GameTeamsKey(t.GameID), t.ID)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err = r.client.Watch(ctx, txf, names)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create team: %w", err)
		}

		if existingID != "" {
			existing, err := r.GetTeam(ctx, &GetTeamInput{TeamID: existingID})
			if err != nil {
				return nil, err
			}
			return &CreateTeamOutput{Team: existing, AlreadyJoined: true}, nil
		}
		return &CreateTeamOutput{Team: t}, nil
	}

	return nil, fmt.Errorf("failed to create team: %w", redis.TxFailedErr)
}

// GetTeam retrieves a team by ID from Redis
func (r *redisRepository) GetTeam(ctx context.Context, input *GetTeamInput) (*models.Team, error) {
	if input == nil || input.TeamID == "" {
		return nil, errors.New("input and team ID cannot be empty")
	}

	teamJSON, err := r.client.Get(ctx, Key(input.TeamID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	var t models.Team
	if err := json.Unmarshal([]byte(teamJSON), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}

	return &t, nil
}

// GetTeamsByGame retrieves a game's teams ordered by join time
func (r *redisRepository) GetTeamsByGame(ctx context.Context, input *GetTeamsByGameInput) ([]*models.Team, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	ids, err := r.client.SMembers(ctx, GameTeamsKey(input.GameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get team IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Team{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	teams := make([]*models.Team, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var t models.Team
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team: %w", err)
		}
		teams = append(teams, &t)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].ID < teams[j].ID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

// GetTeamByName retrieves a team by name, ignoring case
func (r *redisRepository) GetTeamByName(ctx context.Context, input *GetTeamByNameInput) (*models.Team, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	id, err := r.client.HGet(ctx, namesKey(input.GameID), NormalizeName(input.Name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by name: %w", err)
	}

	return r.GetTeam(ctx, &GetTeamInput{TeamID: id})
}
