// internal/models/quote.go
package models

// QuoteStatus tracks the lifecycle of a quote after creation.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusPurchased QuoteStatus = "purchased"
)

// Quote is a priced insurance offer from one provider for one insurance line.
// Immutable after creation except for externally driven status transitions.
type Quote struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	InsuranceType  string                 `json:"insuranceType"`
	ProviderID     string                 `json:"providerId"`
	ProviderName   string                 `json:"providerName"`
	MonthlyPremium float64                `json:"monthlyPremium"`
	AnnualPremium  float64                `json:"annualPremium"` // always monthlyPremium * 12
	CoverageAmount string                 `json:"coverageAmount"`
	Deductible     int                    `json:"deductible,omitempty"`
	Status         QuoteStatus            `json:"status"`
	ValidUntil     string                 `json:"validUntil"` // RFC 3339, strictly after createdAt
	CreatedAt      string                 `json:"createdAt"`  // RFC 3339
	Features       []string               `json:"features"`
	Exclusions     []string               `json:"exclusions"`
	Discounts      []Discount             `json:"discounts"`
	RiskScore      int                    `json:"riskScore"`      // 1-10, lower is better
	ProviderRating float64                `json:"providerRating"` // 1-5
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type Discount struct {
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	IsPercentage bool    `json:"isPercentage"`
}

// Provider is one entry in the injected provider directory used by quote generation.
type Provider struct {
	ID                string   `json:"id" mapstructure:"id"`
	Name              string   `json:"name" mapstructure:"name"`
	Rating            float64  `json:"rating" mapstructure:"rating"`
	PremiumMultiplier float64  `json:"premiumMultiplier" mapstructure:"premium_multiplier"`
	SupportedTypes    []string `json:"supportedTypes" mapstructure:"supported_types"`
}

// Supports reports whether the provider offers the given insurance line.
func (p Provider) Supports(insuranceType string) bool {
	for _, t := range p.SupportedTypes {
		if t == insuranceType {
			return true
		}
	}
	return false
}
