// internal/workers/quote/generate-quotes/handler_test.go
package generatequotes

import (
	"context"
	"math"
	"testing"
	"time"

	"insurance-quote-workers/internal/common/config"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/random"
	"insurance-quote-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		ValidityDays:    30,
		Providers:       config.DefaultProviders(),
		PremiumRanges:   config.DefaultPremiumRanges(),
		TypeMultipliers: config.DefaultTypeMultipliers(),
	}
}

func newTestHandler(t *testing.T, src random.Source) *Handler {
	return NewHandler(createTestConfig(), nil, src, logger.NewTestLogger(t))
}

func TestHandler_Execute_OneQuotePerProvider(t *testing.T) {
	handler := newTestHandler(t, random.NewSeeded(42))

	output, err := handler.Execute(context.Background(), &Input{
		UserID:        "user-1",
		InsuranceType: models.InsuranceTypeAuto,
	})

	require.NoError(t, err)
	require.Len(t, output.Quotes, 3)
	assert.Equal(t, 3, output.QuoteCount)

	names := make(map[string]bool)
	for _, q := range output.Quotes {
		names[q.ProviderName] = true
	}
	assert.True(t, names["Santam"])
	assert.True(t, names["Discovery"])
	assert.True(t, names["Outsurance"])
}

func TestHandler_Execute_QuoteInvariants(t *testing.T) {
	handler := newTestHandler(t, random.NewSeeded(7))

	output, err := handler.Execute(context.Background(), &Input{
		UserID:        "user-1",
		InsuranceType: models.InsuranceTypeHome,
	})

	require.NoError(t, err)
	for _, q := range output.Quotes {
		assert.InDelta(t, roundCents(q.MonthlyPremium*12), q.AnnualPremium, 0.001)
		assert.Equal(t, int(math.Floor(q.MonthlyPremium*0.1)), q.Deductible)
		assert.GreaterOrEqual(t, q.RiskScore, 1)
		assert.LessOrEqual(t, q.RiskScore, 10)
		assert.Equal(t, models.QuoteStatusPending, q.Status)

		created, err := time.Parse(time.RFC3339, q.CreatedAt)
		require.NoError(t, err)
		valid, err := time.Parse(time.RFC3339, q.ValidUntil)
		require.NoError(t, err)
		assert.True(t, valid.After(created))

		assert.GreaterOrEqual(t, len(q.Features), 2)
		assert.LessOrEqual(t, len(q.Features), 4)
		assert.GreaterOrEqual(t, len(q.Exclusions), 2)
		assert.LessOrEqual(t, len(q.Exclusions), 4)
		assert.LessOrEqual(t, len(q.Discounts), 2)
	}
}

func TestHandler_Execute_DeterministicPremiums(t *testing.T) {
	// Float64 = 0.5 puts the auto base premium at 800 + 0.5*1700 = 1650.
	src := &random.Sequence{Floats: []float64{0.5}, Ints: []int{0}}
	handler := newTestHandler(t, src)

	output, err := handler.Execute(context.Background(), &Input{
		UserID:        "user-1",
		InsuranceType: models.InsuranceTypeAuto,
	})

	require.NoError(t, err)
	premiums := make(map[string]float64)
	for _, q := range output.Quotes {
		premiums[q.ProviderName] = q.MonthlyPremium
	}
	assert.Equal(t, 1815.0, premiums["Santam"])     // 1650 * 1.10
	assert.Equal(t, 1980.0, premiums["Discovery"])  // 1650 * 1.20
	assert.Equal(t, 1567.5, premiums["Outsurance"]) // 1650 * 0.95
}

func TestHandler_Execute_UnknownTypeFallsBack(t *testing.T) {
	src := &random.Sequence{Floats: []float64{0.0}, Ints: []int{0}}
	handler := newTestHandler(t, src)

	output, err := handler.Execute(context.Background(), &Input{
		UserID:        "user-1",
		InsuranceType: "drone",
	})

	require.NoError(t, err)
	require.Len(t, output.Quotes, 3)
	for _, q := range output.Quotes {
		// default range floor is 500, scaled by the provider multiplier
		assert.GreaterOrEqual(t, q.MonthlyPremium, 500*0.95)
		assert.LessOrEqual(t, q.MonthlyPremium, 2000*1.20)
	}
}

func TestHandler_Execute_MissingRequiredFields(t *testing.T) {
	handler := newTestHandler(t, random.NewSeeded(1))

	_, err := handler.Execute(context.Background(), &Input{
		InsuranceType: models.InsuranceTypeAuto,
	})

	assert.Error(t, err)
}

func TestHandler_SampleStrings_NoDuplicates(t *testing.T) {
	handler := newTestHandler(t, random.NewSeeded(3))
	catalog := []string{"a", "b", "c", "d", "e"}

	picked := handler.sampleStrings(catalog, 4)

	assert.Len(t, picked, 4)
	seen := make(map[string]bool)
	for _, item := range picked {
		assert.False(t, seen[item])
		seen[item] = true
	}
}

func TestHandler_SampleStrings_CountCappedAtCatalogSize(t *testing.T) {
	handler := newTestHandler(t, random.NewSeeded(3))

	picked := handler.sampleStrings([]string{"a", "b"}, 4)

	assert.Len(t, picked, 2)
}

func TestFormatZAR(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{1650, "R1 650.00"},
		{165000, "R165 000.00"},
		{2500000, "R2 500 000.00"},
		{999.5, "R999.50"},
		{0, "R0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatZAR(tt.amount))
	}
}
