// internal/workers/communication/purchase-notification/config.go
package purchasenotification

import (
	"time"

	"insurance-quote-workers/internal/common/config"
)

type Config struct {
	Timeout           time.Duration
	EmailEnabled      bool
	SMSEnabled        bool
	FromEmail         string
	AWSRegion         string
	PriorityThreshold string
	TemplateRegistry  string
}

func LoadConfig(cfg *config.Config) *Config {
	worker := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:           config.GetDuration(worker.Timeout),
		EmailEnabled:      cfg.Notifications.Email.Enabled,
		SMSEnabled:        cfg.Notifications.SMS.Enabled,
		FromEmail:         cfg.Notifications.Email.FromEmail,
		AWSRegion:         cfg.Notifications.AWS.Region,
		PriorityThreshold: cfg.Notifications.SMS.PriorityThreshold,
		TemplateRegistry:  cfg.Notifications.TemplateRegistry,
	}
}
