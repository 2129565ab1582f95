// internal/workers/advisory/assign-representative/models.go
package assignrepresentative

import "insurance-quote-workers/internal/models"

type Input struct {
	UserID        string `json:"userId,omitempty"`
	InsuranceType string `json:"insuranceType,omitempty"`
}

type Output struct {
	Representative models.Representative `json:"representative"`
	Specialized    bool                  `json:"specialized"`
}
