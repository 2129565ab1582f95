// internal/models/interest.go
package models

// InterestStatus records how the user's chosen quote relates to the recommendation.
// Derived once at creation and never recomputed.
type InterestStatus string

const (
	InterestStatusRecommended    InterestStatus = "recommended"
	InterestStatusNotRecommended InterestStatus = "not-recommended"
	InterestStatusSameAsRec      InterestStatus = "same-as-recommendation"
)

// QuoteInterest links a user, the quote they will proceed with, and the
// recommendation that was shown to them.
type QuoteInterest struct {
	ID                 string                 `json:"id"`
	UserID             string                 `json:"userId"`
	InterestedQuoteID  string                 `json:"interestedQuoteId"`
	RecommendedQuoteID string                 `json:"recommendedQuoteId"`
	Status             InterestStatus         `json:"status"`
	RepresentativeID   string                 `json:"representativeId"` // empty until assignment
	CreatedAt          string                 `json:"createdAt"`        // RFC 3339
	FormData           map[string]interface{} `json:"formData,omitempty"`
}

// AssignmentStatus tracks the representative assignment lifecycle.
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusInProgress AssignmentStatus = "in-progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusCancelled  AssignmentStatus = "cancelled"
)

// RepresentativeAssignment links a quote interest to the representative handling
// it, with the response-time SLA.
type RepresentativeAssignment struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"userId"`
	RepresentativeID     string           `json:"representativeId"`
	QuoteInterestID      string           `json:"quoteInterestId"`
	Status               AssignmentStatus `json:"status"`
	AssignedAt           string           `json:"assignedAt"` // RFC 3339
	ExpectedResponseDays int              `json:"expectedResponseDays"`
	RespondBy            string           `json:"respondBy"` // assignedAt + SLA in business days
}
