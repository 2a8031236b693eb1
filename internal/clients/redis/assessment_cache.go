package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
	"github.com/venturegate/validation-backend/internal/utils"
)

// AssessmentCache memoizes per-turn quality assessments so a retried or
// duplicated turn never pays for a second assessment call. Keys come from
// onboarding.AssessmentCacheKey; a miss returns (nil, nil).
type AssessmentCache interface {
	Get(ctx context.Context, key string) (*types.QualityAssessment, error)
	Set(ctx context.Context, key string, a *types.QualityAssessment) error
	Close() error
}

type assessmentCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewAssessmentCache(log *logger.Logger) (AssessmentCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlMinutes := utils.GetEnvAsInt("ASSESSMENT_CACHE_TTL_MINUTES", 60, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &assessmentCache{
		log: log.With("service", "AssessmentCache"),
		rdb: rdb,
		ttl: time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func (c *assessmentCache) Get(ctx context.Context, key string) (*types.QualityAssessment, error) {
	if c == nil || c.rdb == nil {
		return nil, fmt.Errorf("assessment cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var a types.QualityAssessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		// A corrupt entry is treated as a miss; the next Set repairs it.
		c.log.Warn("bad cached assessment payload", "error", err)
		return nil, nil
	}
	return &a, nil
}

func (c *assessmentCache) Set(ctx context.Context, key string, a *types.QualityAssessment) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("assessment cache not initialized")
	}
	if a == nil {
		return nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *assessmentCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
