// Package config holds the server settings and binds them to flags and
// PARTYGAME_ environment variables.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jpcodeman/partygame/internal/auth"
)

// EnvPrefix is prepended to every environment variable
const EnvPrefix = "PARTYGAME"

// ConfigError is a custom error type for invalid settings
type ConfigError string

// Error implements the error interface
func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrJWTSecretRequired    ConfigError = "jwt-secret is required"
	ErrAdminPasswordMissing ConfigError = "admin-password or admin-password-hash is required"
	ErrDatasetDBRequired    ConfigError = "dataset-db is required"
)

// Config is the full set of server settings
type Config struct {
	Bind           string
	Port           int
	LogLevel       string
	RequestTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DatasetDB is the sqlite file holding datasets
	DatasetDB string

	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string
	TokenTTL          time.Duration

	// PublicURL is the base of team join links, used for QR codes
	PublicURL      string
	AllowedOrigin  string
	EnforceHostKey bool

	// Seed makes round generation repeatable. 0 seeds from the clock.
	Seed int64

	DiscordToken   string
	DiscordAppID   string
	DiscordGuildID string

	OTelEndpoint string
}

// RegisterFlags defines every setting on fs with its default
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&c.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: PARTYGAME_BIND)")
	fs.IntVarP(&c.Port, "port", "p", 8080, "port to listen on (env: PARTYGAME_PORT)")
	fs.StringVar(&c.LogLevel, "log-level", "info", "zerolog level (env: PARTYGAME_LOG_LEVEL)")
	fs.DurationVar(&c.RequestTimeout, "request-timeout", 10*time.Second, "per request timeout (env: PARTYGAME_REQUEST_TIMEOUT)")

	fs.StringVar(&c.RedisAddr, "redis-addr", "localhost:6379", "redis address (env: PARTYGAME_REDIS_ADDR)")
	fs.StringVar(&c.RedisPassword, "redis-password", "", "redis password (env: PARTYGAME_REDIS_PASSWORD)")
	fs.IntVar(&c.RedisDB, "redis-db", 0, "redis database number (env: PARTYGAME_REDIS_DB)")

	fs.StringVar(&c.DatasetDB, "dataset-db", "partygame.db", "path to the dataset sqlite file (env: PARTYGAME_DATASET_DB)")

	fs.StringVar(&c.JWTSecret, "jwt-secret", "", "secret signing admin tokens (env: PARTYGAME_JWT_SECRET)")
	fs.StringVar(&c.AdminPassword, "admin-password", "", "admin password, hashed at startup (env: PARTYGAME_ADMIN_PASSWORD)")
	fs.StringVar(&c.AdminPasswordHash, "admin-password-hash", "", "bcrypt hash of the admin password (env: PARTYGAME_ADMIN_PASSWORD_HASH)")
	fs.DurationVar(&c.TokenTTL, "token-ttl", auth.DefaultTokenTTL, "admin token lifetime (env: PARTYGAME_TOKEN_TTL)")

	fs.StringVar(&c.PublicURL, "public-url", "", "public base URL for join links (env: PARTYGAME_PUBLIC_URL)")
	fs.StringVar(&c.AllowedOrigin, "allowed-origin", "", "browser origin allowed by CORS (env: PARTYGAME_ALLOWED_ORIGIN)")
	fs.BoolVar(&c.EnforceHostKey, "enforce-host-key", false, "require X-Host-Key to finalize and advance (env: PARTYGAME_ENFORCE_HOST_KEY)")

	fs.Int64Var(&c.Seed, "seed", 0, "random seed for round generation, 0 for random (env: PARTYGAME_SEED)")

	fs.StringVar(&c.DiscordToken, "discord-token", "", "enables the Discord bot (env: PARTYGAME_DISCORD_TOKEN)")
	fs.StringVar(&c.DiscordAppID, "discord-app-id", "", "Discord application ID (env: PARTYGAME_DISCORD_APP_ID)")
	fs.StringVar(&c.DiscordGuildID, "discord-guild-id", "", "register Discord commands for one guild (env: PARTYGAME_DISCORD_GUILD_ID)")

	fs.StringVar(&c.OTelEndpoint, "otel-endpoint", "", "OTLP/HTTP trace collector URL (env: PARTYGAME_OTEL_ENDPOINT)")
}

// BindEnv fills every flag the user did not set from its environment
// variable, e.g. --redis-addr from PARTYGAME_REDIS_ADDR.
func BindEnv(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil && bindErr == nil {
				bindErr = fmt.Errorf("invalid value for %s: %w", f.Name, err)
			}
		}
	})
	return bindErr
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrJWTSecretRequired
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return ErrAdminPasswordMissing
	}
	if strings.TrimSpace(c.DatasetDB) == "" {
		return ErrDatasetDBRequired
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// PasswordHash returns the configured hash, hashing a plain password when
// only that was given
func (c *Config) PasswordHash() (string, error) {
	if c.AdminPasswordHash != "" {
		return c.AdminPasswordHash, nil
	}
	return auth.HashPassword(c.AdminPassword)
}

// DiscordEnabled reports whether the Discord bot should run
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
