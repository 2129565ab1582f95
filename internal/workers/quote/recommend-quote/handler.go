// internal/workers/quote/recommend-quote/handler.go
package recommendquote

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "recommend-quote"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "RECOMMENDATION_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute ranks the quotes and returns the winner with alternatives. A nil
// recommendation is returned only for an empty quote list, never an error.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.Quotes) == 0 {
		h.logger.Info("no quotes to rank", nil)
		return &Output{Recommendation: nil}, nil
	}

	budgetMax := h.budgetMax(input.FormData)

	scores := make([]ScoreBreakdown, len(input.Quotes))
	for i, q := range input.Quotes {
		scores[i] = h.scoreQuote(q, budgetMax)
	}

	// Stable sort keeps input order on ties, so the first quote wins.
	order := make([]int, len(input.Quotes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Total > scores[order[b]].Total
	})

	winner := input.Quotes[order[0]]
	winnerScore := scores[order[0]]

	alternatives := make([]models.Quote, 0, 3)
	for _, idx := range order[1:] {
		if len(alternatives) == 3 {
			break
		}
		alternatives = append(alternatives, input.Quotes[idx])
	}

	recommendation := &models.QuoteRecommendation{
		RecommendedQuote:  winner,
		Reasons:           h.buildReasons(winner, budgetMax),
		Confidence:        winnerScore.Total,
		AlternativeQuotes: alternatives,
	}

	metrics.RecommendationsProduced.WithLabelValues(winner.ProviderName).Inc()

	h.logger.Info("recommendation produced", map[string]interface{}{
		"quoteId":    winner.ID,
		"provider":   winner.ProviderName,
		"confidence": winnerScore.Total,
		"candidates": len(input.Quotes),
	})

	return &Output{Recommendation: recommendation}, nil
}

func (h *Handler) budgetMax(formData map[string]interface{}) float64 {
	if formData != nil {
		if v, ok := formData["budgetMax"].(float64); ok && v > 0 {
			return v
		}
	}
	return h.config.DefaultBudgetMax
}

// scoreQuote computes the five bounded terms and their unweighted sum.
func (h *Handler) scoreQuote(q models.Quote, budgetMax float64) ScoreBreakdown {
	rating := (q.ProviderRating / 5) * 25

	ratio := (budgetMax - q.MonthlyPremium) / budgetMax
	if ratio < 0 {
		ratio = 0
	}
	affordability := ratio * 25

	riskRatio := (10 - float64(q.RiskScore)) / 10
	if riskRatio < 0 {
		riskRatio = 0
	}
	risk := riskRatio * 20

	feature := float64(len(q.Features)) * 2
	if feature > 20 {
		feature = 20
	}

	discount := float64(len(q.Discounts)) * 3
	if discount > 10 {
		discount = 10
	}

	return ScoreBreakdown{
		RatingTerm:        rating,
		AffordabilityTerm: affordability,
		RiskTerm:          risk,
		FeatureTerm:       feature,
		DiscountTerm:      discount,
		Total:             rating + affordability + risk + feature + discount,
	}
}

// buildReasons attaches a reason only when its condition holds. Zero reasons is
// a legitimate outcome.
func (h *Handler) buildReasons(q models.Quote, budgetMax float64) []string {
	reasons := []string{}

	if q.ProviderRating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Highly rated provider (%.1f/5)", q.ProviderRating))
	}

	if q.MonthlyPremium <= budgetMax*0.8 {
		reasons = append(reasons, "Premium is well within your stated budget")
	} else if q.MonthlyPremium <= budgetMax {
		reasons = append(reasons, "Premium fits your stated budget")
	}

	if q.RiskScore <= 3 {
		reasons = append(reasons, "Low risk profile")
	}

	if len(q.Features) >= 8 {
		reasons = append(reasons, "Comprehensive cover features")
	}

	if len(q.Discounts) > 0 {
		reasons = append(reasons, fmt.Sprintf("Includes %d discount(s)", len(q.Discounts)))
	}

	return reasons
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// ScoreFor exposes the score breakdown for a single quote, used by callers
// that display per-quote scores alongside the recommendation.
func (h *Handler) ScoreFor(q models.Quote, formData map[string]interface{}) ScoreBreakdown {
	return h.scoreQuote(q, h.budgetMax(formData))
}
