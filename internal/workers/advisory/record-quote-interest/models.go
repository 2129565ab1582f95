// internal/workers/advisory/record-quote-interest/models.go
package recordquoteinterest

import "insurance-quote-workers/internal/models"

type Input struct {
	UserID           string                 `json:"userId"`
	InterestedQuote  models.Quote           `json:"interestedQuote"`
	RecommendedQuote models.Quote           `json:"recommendedQuote"`
	UserChoice       models.UserChoice      `json:"userChoice"`
	RepresentativeID string                 `json:"representativeId,omitempty"`
	FormData         map[string]interface{} `json:"formData,omitempty"`
}

type Output struct {
	Interest   models.QuoteInterest             `json:"interest"`
	Assignment *models.RepresentativeAssignment `json:"assignment,omitempty"`
}
