// internal/workers/advisory/assign-representative/handler.go
package assignrepresentative

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"insurance-quote-workers/internal/common/errors"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/common/random"
	"insurance-quote-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assign-representative"
)

type Handler struct {
	config *Config
	rand   random.Source
	logger logger.Logger
}

// NewHandler builds the assignment handler. An empty roster is a configuration
// error surfaced here; assignment itself never fails.
func NewHandler(config *Config, rnd random.Source, log logger.Logger) (*Handler, error) {
	if len(config.Roster) == 0 {
		return nil, errors.NewEmptyRosterError()
	}
	return &Handler{
		config: config,
		rand:   rnd,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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
		h.failJob(client, job, "ASSIGNMENT_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute picks a representative through the fallback chain: available and
// specialized, then any available, then the roster's first entry. Selection
// within the eligible set is uniform-random by index.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	eligible := h.availableSpecialists(input.InsuranceType)
	specialized := len(eligible) > 0

	if len(eligible) == 0 {
		eligible = h.available()
	}
	if len(eligible) == 0 {
		eligible = h.config.Roster[:1]
	}

	rep := eligible[h.rand.Intn(len(eligible))]

	metrics.RepresentativeAssignments.WithLabelValues(rep.ID, strconv.FormatBool(specialized)).Inc()

	h.logger.Info("representative assigned", map[string]interface{}{
		"userId":           input.UserID,
		"insuranceType":    input.InsuranceType,
		"representativeId": rep.ID,
		"specialized":      specialized,
	})

	return &Output{Representative: rep, Specialized: specialized}, nil
}

func (h *Handler) availableSpecialists(insuranceType string) []models.Representative {
	var eligible []models.Representative
	for _, rep := range h.config.Roster {
		if rep.IsAvailable && rep.SpecializesIn(insuranceType) {
			eligible = append(eligible, rep)
		}
	}
	return eligible
}

func (h *Handler) available() []models.Representative {
	var eligible []models.Representative
	for _, rep := range h.config.Roster {
		if rep.IsAvailable {
			eligible = append(eligible, rep)
		}
	}
	return eligible
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
