// internal/workers/quote/generate-quotes/models.go
package generatequotes

import "insurance-quote-workers/internal/models"

type Input struct {
	UserID        string                 `json:"userId"`
	InsuranceType string                 `json:"insuranceType"`
	FormData      map[string]interface{} `json:"formData,omitempty"`
}

type Output struct {
	Quotes     []models.Quote `json:"quotes"`
	QuoteCount int            `json:"quoteCount"`
}
