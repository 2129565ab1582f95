// internal/workers/quote/recommend-quote/config.go
package recommendquote

import (
	"time"

	"insurance-quote-workers/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	DefaultBudgetMax float64
}

func LoadConfig(cfg *config.Config) *Config {
	worker := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:          config.GetDuration(worker.Timeout),
		DefaultBudgetMax: cfg.Quotes.DefaultBudgetMax,
	}
}
