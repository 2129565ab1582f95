// internal/workers/advisory/record-quote-interest/config.go
package recordquoteinterest

import (
	"time"

	"insurance-quote-workers/internal/common/config"
)

type Config struct {
	Timeout              time.Duration
	ExpectedResponseDays int
	CacheTTL             time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	worker := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:              config.GetDuration(worker.Timeout),
		ExpectedResponseDays: cfg.Advisory.ExpectedResponseDays,
		CacheTTL:             time.Duration(cfg.Advisory.InterestCacheTTLSecs) * time.Second,
	}
}
