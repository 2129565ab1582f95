// internal/workers/quote/generate-quotes/catalogs.go
package generatequotes

import (
	"insurance-quote-workers/internal/models"
)

// Per-line feature, exclusion, and discount catalogs. Unknown insurance lines
// use the default catalogs, never an error.

var featureCatalogs = map[string][]string{
	models.InsuranceTypeAuto: {
		"24/7 roadside assistance",
		"Accident forgiveness",
		"Car hire while in repair",
		"Windscreen cover",
		"Hail damage cover",
		"Theft and hijack cover",
		"Approved repairer network",
		"Sound system cover",
	},
	models.InsuranceTypeHome: {
		"Buildings cover",
		"Household contents cover",
		"Geyser burst cover",
		"Garden and landscaping cover",
		"Alternative accommodation",
		"Home emergency assistance",
		"Security upgrade benefit",
	},
	models.InsuranceTypeLife: {
		"Lump sum payout",
		"Terminal illness benefit",
		"Premium waiver on disability",
		"Funeral benefit",
		"Cashback rewards",
		"Accidental death top-up",
	},
	models.InsuranceTypeBusiness: {
		"Business interruption cover",
		"Public liability included",
		"Stock and equipment cover",
		"Employee dishonesty cover",
		"Goods in transit cover",
		"Cyber incident cover",
	},
	models.InsuranceTypePublicLiability: {
		"Legal defence costs",
		"Product liability extension",
		"Tenant liability cover",
		"Event liability cover",
		"Wrongful arrest cover",
	},
	models.InsuranceTypeEngineering: {
		"Contract works cover",
		"Plant and machinery cover",
		"Construction delay cover",
		"Surrounding property cover",
		"Professional fees cover",
		"Removal of debris",
	},
}

var defaultFeatureCatalog = []string{
	"Fast claims processing",
	"Dedicated claims consultant",
	"No-claim bonus",
	"Flexible payment terms",
	"Online policy management",
}

var exclusionCatalogs = map[string][]string{
	models.InsuranceTypeAuto: {
		"Driving under the influence",
		"Unlicensed drivers",
		"Racing or track use",
		"Wear and tear",
		"Mechanical breakdown",
	},
	models.InsuranceTypeHome: {
		"Unoccupied for more than 60 days",
		"Gradual deterioration",
		"Pest or vermin damage",
		"Pre-existing damage",
		"Unforced entry theft",
	},
	models.InsuranceTypeLife: {
		"Suicide within first 24 months",
		"Non-disclosure of medical history",
		"Hazardous pursuits",
		"War and terrorism",
	},
	models.InsuranceTypeBusiness: {
		"Unoccupied premises",
		"Deliberate acts",
		"Consequential loss beyond cover period",
		"Unmaintained equipment",
	},
	models.InsuranceTypePublicLiability: {
		"Contractual liability",
		"Professional advice claims",
		"Asbestos-related claims",
		"Fines and penalties",
	},
	models.InsuranceTypeEngineering: {
		"Faulty design",
		"Normal wear and tear",
		"Inventory losses",
		"Consequential loss",
		"War and nuclear risks",
	},
}

var defaultExclusionCatalog = []string{
	"Intentional damage",
	"Fraudulent claims",
	"Losses outside territory",
	"Undeclared risks",
}

var discountCatalogs = map[string][]models.Discount{
	models.InsuranceTypeAuto: {
		{Type: "no-claims", Description: "No-claims bonus", Amount: 10, IsPercentage: true},
		{Type: "security", Description: "Tracking device installed", Amount: 15, IsPercentage: true},
		{Type: "multi-policy", Description: "Multiple policies with provider", Amount: 5, IsPercentage: true},
	},
	models.InsuranceTypeHome: {
		{Type: "security", Description: "Alarm system linked to armed response", Amount: 15, IsPercentage: true},
		{Type: "no-claims", Description: "No-claims bonus", Amount: 10, IsPercentage: true},
		{Type: "multi-policy", Description: "Bundled with car insurance", Amount: 5, IsPercentage: true},
	},
	models.InsuranceTypeLife: {
		{Type: "wellness", Description: "Wellness programme member", Amount: 15, IsPercentage: true},
		{Type: "non-smoker", Description: "Non-smoker rate", Amount: 10, IsPercentage: true},
	},
	models.InsuranceTypeBusiness: {
		{Type: "risk-management", Description: "Approved risk management plan", Amount: 10, IsPercentage: true},
		{Type: "loyalty", Description: "Three years claim-free", Amount: 5, IsPercentage: true},
	},
}

var defaultDiscountCatalog = []models.Discount{
	{Type: "loyalty", Description: "Loyalty discount", Amount: 10, IsPercentage: true},
	{Type: "annual-payment", Description: "Annual payment upfront", Amount: 15, IsPercentage: true},
	{Type: "online", Description: "Online purchase discount", Amount: 5, IsPercentage: true},
}

func featuresFor(insuranceType string) []string {
	if catalog, ok := featureCatalogs[insuranceType]; ok {
		return catalog
	}
	return defaultFeatureCatalog
}

func exclusionsFor(insuranceType string) []string {
	if catalog, ok := exclusionCatalogs[insuranceType]; ok {
		return catalog
	}
	return defaultExclusionCatalog
}

func discountsFor(insuranceType string) []models.Discount {
	if catalog, ok := discountCatalogs[insuranceType]; ok {
		return catalog
	}
	return defaultDiscountCatalog
}
