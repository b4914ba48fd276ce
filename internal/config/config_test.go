package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newFlags(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	require.NoError(t, BindEnv(fs))
	return cfg
}

func valid() *Config {
	return &Config{
		Port:          8080,
		LogLevel:      "info",
		JWTSecret:     "secret",
		AdminPassword: "hunter2",
		DatasetDB:     "partygame.db",
	}
}

func TestDefaults(t *testing.T) {
	cfg := newFlags(t)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.EnforceHostKey)
	assert.False(t, cfg.DiscordEnabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestEnvironmentFillsUnsetFlags(t *testing.T) {
	t.Setenv("PARTYGAME_REDIS_ADDR", "redis:6380")
	t.Setenv("PARTYGAME_ENFORCE_HOST_KEY", "true")
	t.Setenv("PARTYGAME_TOKEN_TTL", "2h")
	t.Setenv("PARTYGAME_SEED", "42")
	t.Setenv("PARTYGAME_PORT", "9000")

	cfg := newFlags(t, "--port", "7000")

	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.True(t, cfg.EnforceHostKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(42), cfg.Seed)
	// explicit flags win over the environment
	assert.Equal(t, 7000, cfg.Port)
}

func TestUnderscoreFlagsNormalize(t *testing.T) {
	cfg := newFlags(t, "--discord_token", "abc")
	assert.Equal(t, "abc", cfg.DiscordToken)
	assert.True(t, cfg.DiscordEnabled())
}

func TestBindEnvRejectsBadValues(t *testing.T) {
	t.Setenv("PARTYGAME_PORT", "eighty")

	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Error(t, BindEnv(fs))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"port zero":       func(c *Config) { c.Port = 0 },
		"port too big":    func(c *Config) { c.Port = 70000 },
		"bad log level":   func(c *Config) { c.LogLevel = "loud" },
		"no jwt secret":   func(c *Config) { c.JWTSecret = " " },
		"no admin secret": func(c *Config) { c.AdminPassword = "" },
		"no dataset db":   func(c *Config) { c.DatasetDB = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := valid()
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = "$2a$10$abc"
	assert.NoError(t, cfg.Validate())
}

func TestPasswordHash(t *testing.T) {
	cfg := valid()
	hash, err := cfg.PasswordHash()
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))

	cfg.AdminPasswordHash = "$2a$10$precomputed"
	hash, err = cfg.PasswordHash()
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$precomputed", hash)
}
