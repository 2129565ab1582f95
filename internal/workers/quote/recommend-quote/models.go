// internal/workers/quote/recommend-quote/models.go
package recommendquote

import "insurance-quote-workers/internal/models"

type Input struct {
	Quotes   []models.Quote         `json:"quotes"`
	FormData map[string]interface{} `json:"formData,omitempty"`
}

type Output struct {
	Recommendation *models.QuoteRecommendation `json:"recommendation"`
}

// ScoreBreakdown exposes the five bounded terms for one quote. The total is
// their unweighted sum on a 0-100 scale.
type ScoreBreakdown struct {
	RatingTerm        float64 `json:"ratingTerm"`        // [0,25]
	AffordabilityTerm float64 `json:"affordabilityTerm"` // [0,25]
	RiskTerm          float64 `json:"riskTerm"`          // [0,20]
	FeatureTerm       float64 `json:"featureTerm"`       // [0,20]
	DiscountTerm      float64 `json:"discountTerm"`      // [0,10]
	Total             float64 `json:"total"`
}
