// internal/models/insurance.go
package models

// Insurance lines quoted by the comparison flow. Unknown lines are still
// quotable and fall back to the default rate table.
const (
	InsuranceTypeAuto            = "auto"
	InsuranceTypeHome            = "home"
	InsuranceTypeLife            = "life"
	InsuranceTypeBusiness        = "business"
	InsuranceTypePublicLiability = "public-liability"
	InsuranceTypeEngineering     = "engineering-construction"
	InsuranceTypeMiningRehab     = "mining-rehabilitation"
)

// UserChoice is the user's decision on the recommendation screen.
type UserChoice string

const (
	UserChoiceProceed UserChoice = "proceed"
	UserChoiceChange  UserChoice = "change"
)
