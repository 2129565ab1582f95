// internal/workers/advisory/assign-representative/config.go
package assignrepresentative

import (
	"time"

	"insurance-quote-workers/internal/common/config"
	"insurance-quote-workers/internal/models"
)

type Config struct {
	Timeout time.Duration
	Roster  []models.Representative
}

func LoadConfig(cfg *config.Config) *Config {
	worker := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout: config.GetDuration(worker.Timeout),
		Roster:  cfg.Advisory.Representatives,
	}
}
