// internal/models/recommendation.go
package models

// QuoteRecommendation is the system's top-ranked quote plus justification and
// alternatives. Built once per recommendation request and not persisted.
type QuoteRecommendation struct {
	RecommendedQuote  Quote    `json:"recommendedQuote"`
	Reasons           []string `json:"reasons"` // may legitimately be empty
	Confidence        float64  `json:"confidence"` // 0-100
	AlternativeQuotes []Quote  `json:"alternativeQuotes"` // up to 3, next-best by score
}
