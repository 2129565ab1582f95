// internal/workers/communication/purchase-notification/handler_test.go
package purchasenotification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"insurance-quote-workers/internal/common/errors"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	calls []*ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	calls []*sns.PublishInput
	err   error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func createTestConfig() *Config {
	return &Config{
		Timeout:           10 * time.Second,
		EmailEnabled:      true,
		SMSEnabled:        true,
		FromEmail:         "quotes@compareinsure.example.com",
		PriorityThreshold: "high",
	}
}

func testTemplates() map[string]Template {
	return map[string]Template{
		purchaseIntentTemplate: {
			Subject: "Purchase request for quote {{quoteId}}",
			Body:    "Hi {{applicantName}}, we received your purchase request for {{providerName}}.",
		},
	}
}

func testInput() *Input {
	return &Input{
		Quote: models.Quote{
			ID:             "Q-1",
			ProviderName:   "Discovery",
			InsuranceType:  models.InsuranceTypeAuto,
			MonthlyPremium: 850,
		},
		Applicant: Applicant{
			Name:    "Thandi",
			Surname: "Mthembu",
			Email:   "thandi@example.com",
		},
	}
}

func newTestHandler(t *testing.T, sesMock *mockSES, snsMock *mockSNS) *Handler {
	handler, err := NewHandlerWithClients(createTestConfig(), sesMock, snsMock, testTemplates(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return handler
}

func TestHandler_Execute_SendsEmail(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := newTestHandler(t, sesMock, snsMock)

	output, err := handler.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.NotEmpty(t, output.NotificationID)
	require.Len(t, sesMock.calls, 1)
	assert.Empty(t, snsMock.calls)

	call := sesMock.calls[0]
	assert.Equal(t, "thandi@example.com", call.Destination.ToAddresses[0])
	assert.Equal(t, "Purchase request for quote Q-1", *call.Message.Subject.Data)
	assert.Contains(t, *call.Message.Body.Text.Data, "Hi Thandi")
	assert.Contains(t, *call.Message.Body.Text.Data, "Discovery")
}

func TestHandler_Execute_EmailFailureReportsSuccessFalse(t *testing.T) {
	sesMock := &mockSES{err: fmt.Errorf("ses throttled")}
	handler := newTestHandler(t, sesMock, &mockSNS{})

	output, err := handler.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.False(t, output.Success)
}

func TestHandler_Execute_HighPrioritySendsSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := newTestHandler(t, sesMock, snsMock)

	input := testInput()
	input.Applicant.Phone = "+27831234567"
	input.Priority = "high"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	require.Len(t, snsMock.calls, 1)
	assert.Equal(t, "+27831234567", *snsMock.calls[0].PhoneNumber)
}

func TestHandler_Execute_NormalPrioritySkipsSMS(t *testing.T) {
	snsMock := &mockSNS{}
	handler := newTestHandler(t, &mockSES{}, snsMock)

	input := testInput()
	input.Applicant.Phone = "+27831234567"
	input.Priority = "normal"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Empty(t, snsMock.calls)
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	handler := newTestHandler(t, &mockSES{}, &mockSNS{})

	input := testInput()
	input.Applicant.Email = ""

	_, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFormValidationFailed, stdErr.Code)
}

func TestRenderTemplate(t *testing.T) {
	rendered := renderTemplate("Hello {{name}}, quote {{quoteId}} and {{unknown}}", map[string]interface{}{
		"name":    "Sipho",
		"quoteId": "Q-9",
	})

	assert.Equal(t, "Hello Sipho, quote Q-9 and {{unknown}}", rendered)
}
