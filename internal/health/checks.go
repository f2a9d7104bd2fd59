package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName = "minimal-ecommerce"
	Version       = "1.0.0"
)

// Checks returns the dependency probes for the API: the document store and
// the Redis instance backing the cache, rate limiter and job queue.
func Checks(cfg *config.Config) []health.Config {
	return []health.Config{
		{
			Name:    "database",
			Timeout: 3 * time.Second,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}
}

func New(checks ...health.Config) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	return New(Checks(cfg)...)
}
