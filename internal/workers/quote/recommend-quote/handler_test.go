// internal/workers/quote/recommend-quote/handler_test.go
package recommendquote

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		DefaultBudgetMax: 1000,
	}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), logger.NewTestLogger(t))
}

func testQuote(id string, premium float64, rating float64, risk, features, discounts int) models.Quote {
	q := models.Quote{
		ID:             id,
		MonthlyPremium: premium,
		ProviderRating: rating,
		RiskScore:      risk,
	}
	for i := 0; i < features; i++ {
		q.Features = append(q.Features, "feature")
	}
	for i := 0; i < discounts; i++ {
		q.Discounts = append(q.Discounts, models.Discount{Type: "loyalty"})
	}
	return q
}

func TestHandler_Execute_EmptyQuotes(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Quotes: nil})

	require.NoError(t, err)
	assert.Nil(t, output.Recommendation)
}

func TestHandler_Execute_FixedPremiums_DiscoveryWins(t *testing.T) {
	// With equal risk/features/discounts the provider rating and premium decide:
	// Santam 900 @ 4.2, Discovery 850 @ 4.5, Outsurance 870 @ 4.1.
	quotes := []models.Quote{
		testQuote("q-santam", 900, 4.2, 5, 2, 0),
		testQuote("q-discovery", 850, 4.5, 5, 2, 0),
		testQuote("q-outsurance", 870, 4.1, 5, 2, 0),
	}

	handler := newTestHandler(t)
	output, err := handler.Execute(context.Background(), &Input{
		Quotes:   quotes,
		FormData: map[string]interface{}{"budgetMax": 1000.0},
	})

	require.NoError(t, err)
	require.NotNil(t, output.Recommendation)
	assert.Equal(t, "q-discovery", output.Recommendation.RecommendedQuote.ID)
	// 4.5/5*25 + 150/1000*25 + 5/10*20 + 2*2 + 0 = 22.5 + 3.75 + 10 + 4
	assert.InDelta(t, 40.25, output.Recommendation.Confidence, 0.001)
	assert.Len(t, output.Recommendation.AlternativeQuotes, 2)
}

func TestHandler_Execute_TieKeepsInputOrder(t *testing.T) {
	quotes := []models.Quote{
		testQuote("q-first", 500, 4.0, 5, 3, 1),
		testQuote("q-second", 500, 4.0, 5, 3, 1),
	}

	handler := newTestHandler(t)
	output, err := handler.Execute(context.Background(), &Input{Quotes: quotes})

	require.NoError(t, err)
	assert.Equal(t, "q-first", output.Recommendation.RecommendedQuote.ID)
}

func TestHandler_Execute_AlternativesAreNextThree(t *testing.T) {
	quotes := []models.Quote{
		testQuote("q-1", 900, 4.0, 5, 2, 0),
		testQuote("q-2", 100, 4.9, 1, 8, 2), // winner
		testQuote("q-3", 800, 4.2, 5, 3, 0),
		testQuote("q-4", 700, 4.3, 4, 4, 1),
		testQuote("q-5", 950, 3.8, 8, 2, 0),
	}

	handler := newTestHandler(t)
	output, err := handler.Execute(context.Background(), &Input{Quotes: quotes})

	require.NoError(t, err)
	assert.Equal(t, "q-2", output.Recommendation.RecommendedQuote.ID)
	require.Len(t, output.Recommendation.AlternativeQuotes, 3)
	for _, alt := range output.Recommendation.AlternativeQuotes {
		assert.NotEqual(t, "q-2", alt.ID)
		assert.NotEqual(t, "q-5", alt.ID) // worst quote must be cut
	}
}

func TestHandler_ScoreQuote_TermBounds(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name  string
		quote models.Quote
		check func(t *testing.T, s ScoreBreakdown)
	}{
		{
			name:  "premium over budget floors affordability at zero",
			quote: testQuote("q", 5000, 4.0, 5, 2, 0),
			check: func(t *testing.T, s ScoreBreakdown) {
				assert.Equal(t, 0.0, s.AffordabilityTerm)
			},
		},
		{
			name:  "max risk score floors risk term at zero",
			quote: testQuote("q", 500, 4.0, 10, 2, 0),
			check: func(t *testing.T, s ScoreBreakdown) {
				assert.Equal(t, 0.0, s.RiskTerm)
			},
		},
		{
			name:  "feature term capped at 20",
			quote: testQuote("q", 500, 4.0, 5, 15, 0),
			check: func(t *testing.T, s ScoreBreakdown) {
				assert.Equal(t, 20.0, s.FeatureTerm)
			},
		},
		{
			name:  "discount term capped at 10",
			quote: testQuote("q", 500, 4.0, 5, 2, 5),
			check: func(t *testing.T, s ScoreBreakdown) {
				assert.Equal(t, 10.0, s.DiscountTerm)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := handler.scoreQuote(tt.quote, 1000)

			assert.GreaterOrEqual(t, s.RatingTerm, 0.0)
			assert.LessOrEqual(t, s.RatingTerm, 25.0)
			assert.GreaterOrEqual(t, s.AffordabilityTerm, 0.0)
			assert.LessOrEqual(t, s.AffordabilityTerm, 25.0)
			assert.GreaterOrEqual(t, s.RiskTerm, 0.0)
			assert.LessOrEqual(t, s.RiskTerm, 20.0)
			assert.LessOrEqual(t, s.FeatureTerm, 20.0)
			assert.LessOrEqual(t, s.DiscountTerm, 10.0)
			assert.InDelta(t, s.RatingTerm+s.AffordabilityTerm+s.RiskTerm+s.FeatureTerm+s.DiscountTerm, s.Total, 0.0001)

			tt.check(t, s)
		})
	}
}

func TestHandler_BuildReasons(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("all conditions hold", func(t *testing.T) {
		q := testQuote("q", 700, 4.6, 2, 9, 2)
		reasons := handler.buildReasons(q, 1000)
		assert.Len(t, reasons, 5)
	})

	t.Run("within budget but not well within", func(t *testing.T) {
		q := testQuote("q", 900, 4.0, 5, 2, 0)
		reasons := handler.buildReasons(q, 1000)
		assert.Contains(t, reasons, "Premium fits your stated budget")
	})

	t.Run("no conditions hold yields empty list", func(t *testing.T) {
		q := testQuote("q", 1500, 4.0, 5, 2, 0)
		reasons := handler.buildReasons(q, 1000)
		assert.Empty(t, reasons)
	})
}

func TestHandler_BudgetMax_DefaultWhenAbsent(t *testing.T) {
	handler := newTestHandler(t)

	assert.Equal(t, 1000.0, handler.budgetMax(nil))
	assert.Equal(t, 1000.0, handler.budgetMax(map[string]interface{}{}))
	assert.Equal(t, 2500.0, handler.budgetMax(map[string]interface{}{"budgetMax": 2500.0}))
	assert.Equal(t, 1000.0, handler.budgetMax(map[string]interface{}{"budgetMax": "abc"}))
}

type fakeCompleteCommand struct {
	sent bool
	vars interface{}
}

func (c *fakeCompleteCommand) JobKey(int64) commands.CompleteJobCommandStep2 { return c }
func (c *fakeCompleteCommand) VariablesFromString(string) (commands.DispatchCompleteJobCommand, error) {
	return c, nil
}
func (c *fakeCompleteCommand) VariablesFromStringer(fmt.Stringer) (commands.DispatchCompleteJobCommand, error) {
	return c, nil
}
func (c *fakeCompleteCommand) VariablesFromMap(map[string]interface{}) (commands.DispatchCompleteJobCommand, error) {
	return c, nil
}
func (c *fakeCompleteCommand) VariablesFromObject(v interface{}) (commands.DispatchCompleteJobCommand, error) {
	c.vars = v
	return c, nil
}
func (c *fakeCompleteCommand) VariablesFromObjectIgnoreOmitempty(v interface{}) (commands.DispatchCompleteJobCommand, error) {
	c.vars = v
	return c, nil
}
func (c *fakeCompleteCommand) Send(context.Context) (*pb.CompleteJobResponse, error) {
	c.sent = true
	return &pb.CompleteJobResponse{}, nil
}

type fakeThrowCommand struct {
	sent    bool
	code    string
	message string
}

func (c *fakeThrowCommand) JobKey(int64) commands.ThrowErrorCommandStep2 { return c }
func (c *fakeThrowCommand) ErrorCode(code string) commands.DispatchThrowErrorCommand {
	c.code = code
	return c
}
func (c *fakeThrowCommand) ErrorMessage(msg string) commands.DispatchThrowErrorCommand {
	c.message = msg
	return c
}
func (c *fakeThrowCommand) VariablesFromString(string) (commands.DispatchThrowErrorCommand, error) {
	return c, nil
}
func (c *fakeThrowCommand) VariablesFromStringer(fmt.Stringer) (commands.DispatchThrowErrorCommand, error) {
	return c, nil
}
func (c *fakeThrowCommand) VariablesFromMap(map[string]interface{}) (commands.DispatchThrowErrorCommand, error) {
	return c, nil
}
func (c *fakeThrowCommand) VariablesFromObject(interface{}) (commands.DispatchThrowErrorCommand, error) {
	return c, nil
}
func (c *fakeThrowCommand) VariablesFromObjectIgnoreOmitempty(interface{}) (commands.DispatchThrowErrorCommand, error) {
	return c, nil
}
func (c *fakeThrowCommand) Send(context.Context) (*pb.ThrowErrorResponse, error) {
	c.sent = true
	return &pb.ThrowErrorResponse{}, nil
}

type fakeJobClient struct {
	complete *fakeCompleteCommand
	throw    *fakeThrowCommand
}

func newFakeJobClient() *fakeJobClient {
	return &fakeJobClient{complete: &fakeCompleteCommand{}, throw: &fakeThrowCommand{}}
}

func (c *fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 { return c.complete }
func (c *fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1         { return nil }
func (c *fakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1   { return c.throw }

func testJob(t *testing.T, variables interface{}) entities.Job {
	data, err := json.Marshal(variables)
	require.NoError(t, err)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 11, Variables: string(data)}}
}

func TestHandler_Handle_CompletesJobAndCountsIt(t *testing.T) {
	handler := newTestHandler(t)
	client := newFakeJobClient()

	before := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType))

	job := testJob(t, Input{Quotes: []models.Quote{testQuote("q-1", 500, 4.0, 5, 3, 1)}})
	handler.Handle(client, job)

	assert.True(t, client.complete.sent)
	assert.False(t, client.throw.sent)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType)))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(TaskType)))
}

func TestHandler_Handle_BadVariablesCountsFailure(t *testing.T) {
	handler := newTestHandler(t)
	client := newFakeJobClient()

	before := testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR"))

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 12, Variables: "{not json"}}
	handler.Handle(client, job)

	assert.False(t, client.complete.sent)
	assert.True(t, client.throw.sent)
	assert.Equal(t, "PARSE_ERROR", client.throw.code)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(TaskType)))
}
