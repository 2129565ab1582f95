// internal/workers/advisory/record-quote-interest/handler.go
package recordquoteinterest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"insurance-quote-workers/internal/common/errors"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "record-quote-interest"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  rdb,
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
		h.failJob(client, job, "UNKNOWN_ERROR", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserChoice != models.UserChoiceProceed && input.UserChoice != models.UserChoiceChange {
		return nil, errors.NewInvalidUserChoiceError(string(input.UserChoice))
	}

	now := time.Now().UTC()
	interest := h.buildInterest(input, now)

	if err := h.persistInterest(ctx, interest); err != nil {
		return nil, err
	}

	h.cacheInterest(ctx, interest)
	metrics.InterestRecords.WithLabelValues(string(interest.Status)).Inc()

	output := &Output{Interest: interest}

	if input.RepresentativeID != "" {
		assignment := h.buildAssignment(input.UserID, input.RepresentativeID, interest.ID, now)
		if err := h.persistAssignment(ctx, assignment); err != nil {
			return nil, err
		}
		output.Interest.RepresentativeID = input.RepresentativeID
		output.Assignment = &assignment
	}

	h.logger.Info("quote interest recorded", map[string]interface{}{
		"interestId":       interest.ID,
		"userId":           input.UserID,
		"status":           interest.Status,
		"representativeId": input.RepresentativeID,
	})

	return output, nil
}

// buildInterest derives the recommendation-outcome status once at creation.
// It is never recomputed afterwards.
func (h *Handler) buildInterest(input *Input, now time.Time) models.QuoteInterest {
	var status models.InterestStatus
	interestedQuoteID := input.InterestedQuote.ID

	switch {
	case input.InterestedQuote.ID == input.RecommendedQuote.ID:
		status = models.InterestStatusSameAsRec
	case input.UserChoice == models.UserChoiceChange:
		status = models.InterestStatusRecommended
		interestedQuoteID = input.RecommendedQuote.ID
	default:
		status = models.InterestStatusNotRecommended
	}

	return models.QuoteInterest{
		ID:                 newRecordID("QI", now),
		UserID:             input.UserID,
		InterestedQuoteID:  interestedQuoteID,
		RecommendedQuoteID: input.RecommendedQuote.ID,
		Status:             status,
		CreatedAt:          now.Format(time.RFC3339),
		FormData:           input.FormData,
	}
}

func (h *Handler) buildAssignment(userID, representativeID, interestID string, now time.Time) models.RepresentativeAssignment {
	days := h.config.ExpectedResponseDays
	return models.RepresentativeAssignment{
		ID:                   newRecordID("RA", now),
		UserID:               userID,
		RepresentativeID:     representativeID,
		QuoteInterestID:      interestID,
		Status:               models.AssignmentStatusAssigned,
		AssignedAt:           now.Format(time.RFC3339),
		ExpectedResponseDays: days,
		RespondBy:            addBusinessDays(now, days).Format(time.RFC3339),
	}
}

func (h *Handler) persistInterest(ctx context.Context, interest models.QuoteInterest) error {
	formDataJSON, err := json.Marshal(interest.FormData)
	if err != nil {
		formDataJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO quote_interests (
			id, user_id, interested_quote_id, recommended_quote_id,
			status, representative_id, form_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		interest.ID,
		interest.UserID,
		interest.InterestedQuoteID,
		interest.RecommendedQuoteID,
		string(interest.Status),
		interest.RepresentativeID,
		formDataJSON,
		interest.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (h *Handler) persistAssignment(ctx context.Context, assignment models.RepresentativeAssignment) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO representative_assignments (
			id, user_id, representative_id, quote_interest_id,
			status, assigned_at, expected_response_days, respond_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		assignment.ID,
		assignment.UserID,
		assignment.RepresentativeID,
		assignment.QuoteInterestID,
		string(assignment.Status),
		assignment.AssignedAt,
		assignment.ExpectedResponseDays,
		assignment.RespondBy,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}

	_, err = h.db.ExecContext(ctx,
		`UPDATE quote_interests SET representative_id = $1 WHERE id = $2`,
		assignment.RepresentativeID, assignment.QuoteInterestID,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// cacheInterest writes the record to Redis best-effort. Cache failure never
// fails the operation.
func (h *Handler) cacheInterest(ctx context.Context, interest models.QuoteInterest) {
	if h.redis == nil {
		return
	}

	data, err := json.Marshal(interest)
	if err != nil {
		return
	}

	if err := h.redis.Set(ctx, "interest:"+interest.ID, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("interest cache write failed", map[string]interface{}{
			"interestId": interest.ID,
			"error":      err,
		})
	}
}

// newRecordID combines a time component and a random component. Collision
// probability is not hardened; acceptable for this scope.
func newRecordID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), uuid.New().String()[:8])
}

// addBusinessDays advances the date by the given number of weekdays,
// skipping Saturdays and Sundays.
func addBusinessDays(from time.Time, days int) time.Time {
	result := from
	for added := 0; added < days; {
		result = result.AddDate(0, 0, 1)
		if result.Weekday() != time.Saturday && result.Weekday() != time.Sunday {
			added++
		}
	}
	return result
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
