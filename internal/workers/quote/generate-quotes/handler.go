// internal/workers/quote/generate-quotes/handler.go
package generatequotes

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"insurance-quote-workers/internal/common/config"
	"insurance-quote-workers/internal/common/database"
	"insurance-quote-workers/internal/common/errors"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/common/random"
	"insurance-quote-workers/internal/common/validation"
	"insurance-quote-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "generate-quotes"
)

var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"userId":        {Type: "string"},
		"insuranceType": {Type: "string"},
		"formData":      {Type: "object"},
	},
	Required:             []string{"userId", "insuranceType"},
	AdditionalProperties: true,
}

type Handler struct {
	config *Config
	es     *database.ElasticsearchClient
	rand   random.Source
	logger logger.Logger
}

// NewHandler builds the quote generation handler. The Elasticsearch client is
// optional; when nil, quote indexing is skipped.
func NewHandler(config *Config, es *database.ElasticsearchClient, rnd random.Source, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		es:     es,
		rand:   rnd,
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
		if stdErr, ok := err.(*errors.StandardError); ok {
			h.failJob(client, job, string(stdErr.Code), stdErr.Message, int32(errors.GetRetryCount(stdErr.Code)))
			return
		}
		h.failJob(client, job, string(errors.ErrCodeQuoteGenerationFailed), err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	fields := map[string]interface{}{
		"userId":        input.UserID,
		"insuranceType": input.InsuranceType,
	}
	if input.FormData != nil {
		fields["formData"] = input.FormData
	}
	if result := validation.ValidateInput(fields, inputSchema); !result.Valid {
		return nil, errors.NewFormValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	providers := h.eligibleProviders(input.InsuranceType)

	now := time.Now().UTC()
	quotes := make([]models.Quote, 0, len(providers))
	for _, provider := range providers {
		quote := h.buildQuote(input, provider, now)
		quotes = append(quotes, quote)
		metrics.QuotesGenerated.WithLabelValues(input.InsuranceType, provider.Name).Inc()

		if h.es != nil && h.config.IndexQuotes {
			if err := h.es.IndexDocument(ctx, quote.ID, quote); err != nil {
				h.logger.Warn("quote indexing failed", map[string]interface{}{
					"quoteId": quote.ID,
					"error":   err,
				})
			}
		}
	}

	h.logger.Info("quotes generated", map[string]interface{}{
		"userId":        input.UserID,
		"insuranceType": input.InsuranceType,
		"count":         len(quotes),
	})

	return &Output{Quotes: quotes, QuoteCount: len(quotes)}, nil
}

// eligibleProviders filters the directory to providers supporting the line.
// Unknown lines fall back to the full directory with default rate tables.
func (h *Handler) eligibleProviders(insuranceType string) []models.Provider {
	var eligible []models.Provider
	for _, p := range h.config.Providers {
		if p.Supports(insuranceType) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return h.config.Providers
	}
	return eligible
}

func (h *Handler) buildQuote(input *Input, provider models.Provider, now time.Time) models.Quote {
	premiumRange := h.premiumRangeFor(input.InsuranceType)
	base := premiumRange.Min + h.rand.Float64()*(premiumRange.Max-premiumRange.Min)
	premium := roundCents(base * provider.PremiumMultiplier)

	multiplier := h.typeMultiplierFor(input.InsuranceType)
	coverage := formatZAR(premium * multiplier)

	features := h.sampleStrings(featuresFor(input.InsuranceType), 2+h.rand.Intn(3))
	exclusions := h.sampleStrings(exclusionsFor(input.InsuranceType), 2+h.rand.Intn(3))
	discounts := h.sampleDiscounts(discountsFor(input.InsuranceType), h.rand.Intn(3))

	return models.Quote{
		ID:             fmt.Sprintf("Q-%d-%s", now.UnixMilli(), uuid.New().String()[:8]),
		UserID:         input.UserID,
		InsuranceType:  input.InsuranceType,
		ProviderID:     provider.ID,
		ProviderName:   provider.Name,
		MonthlyPremium: premium,
		AnnualPremium:  roundCents(premium * 12),
		CoverageAmount: coverage,
		Deductible:     int(math.Floor(premium * 0.1)),
		Status:         models.QuoteStatusPending,
		ValidUntil:     now.AddDate(0, 0, h.config.ValidityDays).Format(time.RFC3339),
		CreatedAt:      now.Format(time.RFC3339),
		Features:       features,
		Exclusions:     exclusions,
		Discounts:      discounts,
		RiskScore:      1 + h.rand.Intn(10),
		ProviderRating: provider.Rating,
		Metadata:       input.FormData,
	}
}

func (h *Handler) premiumRangeFor(insuranceType string) config.PremiumRange {
	if r, ok := h.config.PremiumRanges[insuranceType]; ok {
		return r
	}
	return config.DefaultPremiumRange
}

func (h *Handler) typeMultiplierFor(insuranceType string) float64 {
	if m, ok := h.config.TypeMultipliers[insuranceType]; ok {
		return m
	}
	return config.DefaultTypeMultiplier
}

// sampleStrings picks count distinct items from the catalog, capped at its size.
func (h *Handler) sampleStrings(catalog []string, count int) []string {
	pool := make([]string, len(catalog))
	copy(pool, catalog)
	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := h.rand.Intn(len(pool))
		picked = append(picked, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return picked
}

func (h *Handler) sampleDiscounts(catalog []models.Discount, count int) []models.Discount {
	pool := make([]models.Discount, len(catalog))
	copy(pool, catalog)
	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]models.Discount, 0, count)
	for i := 0; i < count; i++ {
		idx := h.rand.Intn(len(pool))
		picked = append(picked, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return picked
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatZAR renders an amount as a rand currency string with space-separated
// thousands, e.g. "R2 500 000.00".
func formatZAR(amount float64) string {
	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := strconv.FormatInt(whole, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return fmt.Sprintf("R%s.%02d", strings.Join(groups, " "), frac)
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
