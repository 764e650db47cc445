package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

const defaultSalaryTTL = 5 * time.Minute

// SalaryCache is a read-through cache in front of a ports.SalaryRepository.
// Key format: salary:<owner>. Only hits are cached; a missing record is always
// looked up again. Cache failures fall back to the repository.
type SalaryCache struct {
	client *redis.Client
	next   ports.SalaryRepository
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSalaryCache wraps next. A zero ttl uses defaultSalaryTTL.
func NewSalaryCache(client *redis.Client, next ports.SalaryRepository, ttl time.Duration, log zerolog.Logger) *SalaryCache {
	if ttl <= 0 {
		ttl = defaultSalaryTTL
	}
	return &SalaryCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *SalaryCache) FindByOwner(ctx context.Context, owner string) (*domain.Salary, error) {
	if cached, err := c.get(ctx, owner); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("owner", owner).Msg("salary cache read failed")
	}

	salary, err := c.next.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, salary); err != nil {
		c.log.Warn().Err(err).Str("owner", owner).Msg("salary cache write failed")
	}
	return salary, nil
}

func (c *SalaryCache) get(ctx context.Context, owner string) (*domain.Salary, error) {
	raw, err := c.client.Get(ctx, c.key(owner)).Bytes()
	if err != nil {
		return nil, err
	}
	var s domain.Salary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode cached salary: %w", err)
	}
	return &s, nil
}

func (c *SalaryCache) set(ctx context.Context, s *domain.Salary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode salary: %w", err)
	}
	return c.client.Set(ctx, c.key(s.Owner), raw, c.ttl).Err()
}

func (c *SalaryCache) key(owner string) string {
	return fmt.Sprintf("salary:%s", owner)
}
