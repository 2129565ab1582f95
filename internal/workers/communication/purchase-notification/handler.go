// internal/workers/communication/purchase-notification/handler.go
package purchasenotification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	commonaws "insurance-quote-workers/internal/common/aws"
	"insurance-quote-workers/internal/common/errors"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/metrics"
	"insurance-quote-workers/internal/common/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "send-purchase-notification"
)

const inputSchemaJSON = `{
	"type": "object",
	"properties": {
		"quote": {
			"type": "object",
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"providerName": {"type": "string"},
				"monthlyPremium": {"type": "number"}
			},
			"required": ["id"]
		},
		"applicant": {
			"type": "object",
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"email": {"type": "string", "format": "email"}
			},
			"required": ["name", "email"]
		},
		"insuranceInfo": {"type": "object"},
		"priority": {"type": "string"}
	},
	"required": ["quote", "applicant"]
}`

// Interfaces over the AWS clients for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config      *Config
	logger      logger.Logger
	sesClient   SESService
	snsClient   SNSService
	templates   map[string]Template
	inputSchema *gojsonschema.Schema
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	templates, err := loadTemplates(config.TemplateRegistry)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	sesClient, err := commonaws.NewSESClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	return newHandler(config, sesClient, snsClient, templates, log)
}

// NewHandlerWithClients wires explicit SES/SNS implementations, used by tests.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, templates map[string]Template, log logger.Logger) (*Handler, error) {
	return newHandler(config, sesClient, snsClient, templates, log)
}

func newHandler(config *Config, sesClient SESService, snsClient SNSService, templates map[string]Template, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(inputSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	return &Handler{
		config:      config,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient:   sesClient,
		snsClient:   snsClient,
		templates:   templates,
		inputSchema: schema,
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

	// Send failures surface as success=false, never a job failure. The
	// purchase workflow state must stay untouched either way.
	output, err := h.execute(ctx, &input)
	if err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok {
			h.failJob(client, job, string(stdErr.Code), stdErr.Message, int32(errors.GetRetryCount(stdErr.Code)))
			return
		}
		h.failJob(client, job, string(errors.ErrCodeNotificationSendFailed), err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.validateInput(input); err != nil {
		return nil, err
	}

	template := h.templates[purchaseIntentTemplate]
	data := h.templateData(input)

	subject := renderTemplate(template.Subject, data)
	body := renderTemplate(template.Body, data)

	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	emailSent := false
	if h.config.EmailEnabled && validation.ValidateEmail(input.Applicant.Email) {
		if err := h.sendEmail(ctx, input.Applicant.Email, subject, body); err != nil {
			h.logger.Error("purchase email send failed", map[string]interface{}{
				"quoteId": input.Quote.ID,
				"email":   input.Applicant.Email,
				"error":   err,
			})
			return &Output{Success: false, NotificationID: notificationID, SentAt: sentAt}, nil
		}
		emailSent = true
	}

	smsSent := false
	if h.config.SMSEnabled && validation.ValidatePhone(input.Applicant.Phone) && input.Priority == h.config.PriorityThreshold {
		if err := h.sendSMS(ctx, input.Applicant.Phone, body); err != nil {
			h.logger.Error("purchase SMS send failed", map[string]interface{}{
				"quoteId": input.Quote.ID,
				"phone":   input.Applicant.Phone,
				"error":   err,
			})
			return &Output{Success: false, NotificationID: notificationID, SentAt: sentAt}, nil
		}
		smsSent = true
	}

	h.logger.Info("purchase notification processed", map[string]interface{}{
		"quoteId":   input.Quote.ID,
		"emailSent": emailSent,
		"smsSent":   smsSent,
	})

	return &Output{
		Success:        emailSent || smsSent,
		NotificationID: notificationID,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) validateInput(input *Input) error {
	result, err := h.inputSchema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.NewFormValidationFailedError(strings.Join(msgs, "; "))
	}
	return nil
}

func (h *Handler) templateData(input *Input) map[string]interface{} {
	data := map[string]interface{}{
		"applicantName":  input.Applicant.Name,
		"applicantEmail": input.Applicant.Email,
		"quoteId":        input.Quote.ID,
		"providerName":   input.Quote.ProviderName,
		"insuranceType":  input.Quote.InsuranceType,
		"monthlyPremium": input.Quote.MonthlyPremium,
		"coverageAmount": input.Quote.CoverageAmount,
	}
	for k, v := range input.InsuranceInfo {
		data[k] = v
	}
	return data
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
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
