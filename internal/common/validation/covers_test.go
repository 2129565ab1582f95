// internal/common/validation/covers_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampCoverAmount(t *testing.T) {
	tests := []struct {
		name     string
		cover    string
		amount   float64
		expected float64
		known    bool
	}{
		{"within range", CoverAccidentalDamage, 25000, 25000, true},
		{"above max", CoverAccidentalDamage, 90000, 50000, true},
		{"below min", CoverPowerSurge, -100, 0, true},
		{"at max", CoverPowerSurge, 30000, 30000, true},
		{"subsidence above max", CoverSubsidence, 200000, 100000, true},
		{"unknown cover", "flood", 10000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClampCoverAmount(tt.cover, tt.amount)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeOptionalCovers(t *testing.T) {
	covers := map[string]float64{
		CoverAccidentalDamage: 60000,
		CoverSubsidence:       -5,
		"pet-damage":          1000,
	}

	normalized := NormalizeOptionalCovers(covers)

	assert.Len(t, normalized, 2)
	assert.Equal(t, 50000.0, normalized[CoverAccidentalDamage])
	assert.Equal(t, 0.0, normalized[CoverSubsidence])
	assert.NotContains(t, normalized, "pet-damage")
}

func TestValidateInput_RequiredFields(t *testing.T) {
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"userId":        {Type: "string"},
			"insuranceType": {Type: "string"},
		},
		Required:             []string{"userId", "insuranceType"},
		AdditionalProperties: true,
	}

	result := ValidateInput(map[string]interface{}{"userId": "user-1"}, schema)

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("insuranceType"))
}

func TestValidateInput_TypeMismatch(t *testing.T) {
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"budgetMax": {Type: "number"},
		},
		AdditionalProperties: true,
	}

	result := ValidateInput(map[string]interface{}{"budgetMax": "a lot"}, schema)

	assert.False(t, result.Valid)
	assert.Equal(t, "INVALID_TYPE", result.Errors[0].Code)
}
