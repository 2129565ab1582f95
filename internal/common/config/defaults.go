// internal/common/config/defaults.go
package config

import "insurance-quote-workers/internal/models"

// DefaultProviders returns the built-in provider directory. Used when the
// config file does not override quotes.providers.
func DefaultProviders() []models.Provider {
	supported := []string{
		models.InsuranceTypeAuto,
		models.InsuranceTypeHome,
		models.InsuranceTypeLife,
		models.InsuranceTypeBusiness,
		models.InsuranceTypePublicLiability,
		models.InsuranceTypeEngineering,
	}
	return []models.Provider{
		{ID: "prov-santam", Name: "Santam", Rating: 4.2, PremiumMultiplier: 1.10, SupportedTypes: supported},
		{ID: "prov-discovery", Name: "Discovery", Rating: 4.5, PremiumMultiplier: 1.20, SupportedTypes: supported},
		{ID: "prov-outsurance", Name: "Outsurance", Rating: 4.1, PremiumMultiplier: 0.95, SupportedTypes: supported},
	}
}

// DefaultPremiumRanges returns the per-line base premium ranges.
func DefaultPremiumRanges() map[string]PremiumRange {
	return map[string]PremiumRange{
		models.InsuranceTypeAuto:            {Min: 800, Max: 2500},
		models.InsuranceTypeHome:            {Min: 400, Max: 1200},
		models.InsuranceTypeLife:            {Min: 200, Max: 800},
		models.InsuranceTypeBusiness:        {Min: 1500, Max: 5000},
		models.InsuranceTypePublicLiability: {Min: 300, Max: 1000},
		models.InsuranceTypeEngineering:     {Min: 2000, Max: 8000},
	}
}

// DefaultPremiumRange applies to insurance lines missing from the range table.
var DefaultPremiumRange = PremiumRange{Min: 500, Max: 2000}

// DefaultTypeMultipliers returns the coverage-amount multipliers per line.
func DefaultTypeMultipliers() map[string]float64 {
	return map[string]float64{
		models.InsuranceTypeAuto:            100,
		models.InsuranceTypeHome:            80,
		models.InsuranceTypeLife:            200,
		models.InsuranceTypeBusiness:        150,
		models.InsuranceTypePublicLiability: 120,
		models.InsuranceTypeEngineering:     300,
	}
}

// DefaultTypeMultiplier applies to insurance lines missing from the multiplier table.
const DefaultTypeMultiplier = 100.0

// DefaultRoster returns the built-in representative roster. The roster is fixed
// for the lifetime of the process; it is injected into the assignment worker at
// construction and never mutated.
func DefaultRoster() []models.Representative {
	return []models.Representative{
		{
			ID: "rep-001", Name: "Thabo", Surname: "Nkosi", Email: "thabo.nkosi@advisors.example.com",
			Specializations: []string{models.InsuranceTypeAuto, models.InsuranceTypeHome},
			Rating:          4.6, ActiveClients: 14, IsAvailable: true,
		},
		{
			ID: "rep-002", Name: "Annelie", Surname: "van der Merwe", Email: "annelie.vdm@advisors.example.com",
			Specializations: []string{models.InsuranceTypeLife, models.InsuranceTypeHome},
			Rating:          4.8, ActiveClients: 9, IsAvailable: true,
		},
		{
			ID: "rep-003", Name: "Sipho", Surname: "Dlamini", Email: "sipho.dlamini@advisors.example.com",
			Specializations: []string{models.InsuranceTypeBusiness, models.InsuranceTypePublicLiability},
			Rating:          4.3, ActiveClients: 21, IsAvailable: true,
		},
		{
			ID: "rep-004", Name: "Priya", Surname: "Naidoo", Email: "priya.naidoo@advisors.example.com",
			Specializations: []string{models.InsuranceTypeEngineering, models.InsuranceTypeMiningRehab},
			Rating:          4.7, ActiveClients: 11, IsAvailable: true,
		},
		{
			ID: "rep-005", Name: "Johan", Surname: "Botha", Email: "johan.botha@advisors.example.com",
			Specializations: []string{models.InsuranceTypeMiningRehab, models.InsuranceTypeEngineering, models.InsuranceTypeBusiness},
			Rating:          4.4, ActiveClients: 17, IsAvailable: true,
		},
		{
			ID: "rep-006", Name: "Lerato", Surname: "Mokoena", Email: "lerato.mokoena@advisors.example.com",
			Specializations: []string{models.InsuranceTypeAuto, models.InsuranceTypeLife},
			Rating:          4.5, ActiveClients: 8, IsAvailable: false,
		},
	}
}
