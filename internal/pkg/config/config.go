package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/salary-api/internal/core/service"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token  TokenConfig
	Hasher HasherConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Audit  AuditConfig
}

// TokenConfig has no defaults: the service refuses to start without it.
type TokenConfig struct {
	TTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, required"`
	Secret     string `env:"JWT_SECRET_KEY,              required"`
	Algorithm  string `env:"JWT_ALGORITHM,               required"`
}

type HasherConfig struct {
	Cost int `env:"BCRYPT_COST, default=12"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=salary_api"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,       default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,         default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE,  default=10"`
	CacheTTL time.Duration `env:"SALARY_CACHE_TTL, default=5m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper is Load with an explicit variable source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate performs the startup checks that envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.Token.TTLMinutes <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer, got %d", c.Token.TTLMinutes)
	}
	if err := c.TokenSettings().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Hasher.Cost < bcrypt.MinCost || c.Hasher.Cost > bcrypt.MaxCost {
		return fmt.Errorf("config: BCRYPT_COST must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Hasher.Cost)
	}
	if c.Redis.PoolSize <= 0 {
		return fmt.Errorf("config: REDIS_POOL_SIZE must be positive, got %d", c.Redis.PoolSize)
	}
	if c.Redis.CacheTTL < 0 {
		return errors.New("config: SALARY_CACHE_TTL must not be negative")
	}
	return nil
}

// TokenSettings converts the token section into the issuer configuration.
func (c *Config) TokenSettings() service.TokenConfig {
	return service.TokenConfig{
		Secret:    []byte(c.Token.Secret),
		TTL:       time.Duration(c.Token.TTLMinutes) * time.Minute,
		Algorithm: c.Token.Algorithm,
	}
}

// MarshalZerologObject logs the configuration without the signing secret.
func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("port", c.Port).
		Str("env", c.Env).
		Str("log_level", c.LogLevel).
		Int("token_ttl_minutes", c.Token.TTLMinutes).
		Str("token_algorithm", c.Token.Algorithm).
		Int("bcrypt_cost", c.Hasher.Cost).
		Str("mongo_db", c.Mongo.Database).
		Str("redis_addr", c.Redis.Addr).
		Int("redis_pool_size", c.Redis.PoolSize).
		Dur("salary_cache_ttl", c.Redis.CacheTTL).
		Int("audit_workers", c.Audit.Workers)
}
