// internal/workers/quote/generate-quotes/config.go
package generatequotes

import (
	"time"

	"insurance-quote-workers/internal/common/config"
	"insurance-quote-workers/internal/models"
)

type Config struct {
	Timeout         time.Duration
	ValidityDays    int
	Providers       []models.Provider
	PremiumRanges   map[string]config.PremiumRange
	TypeMultipliers map[string]float64
	IndexQuotes     bool
}

func LoadConfig(cfg *config.Config) *Config {
	worker := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:         config.GetDuration(worker.Timeout),
		ValidityDays:    cfg.Quotes.ValidityDays,
		Providers:       cfg.Quotes.Providers,
		PremiumRanges:   cfg.Quotes.PremiumRanges,
		TypeMultipliers: cfg.Quotes.TypeMultipliers,
		IndexQuotes:     cfg.Database.Elasticsearch.Enabled,
	}
}
