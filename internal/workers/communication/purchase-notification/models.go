// internal/workers/communication/purchase-notification/models.go
package purchasenotification

import "insurance-quote-workers/internal/models"

type Applicant struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}

type Input struct {
	Quote         models.Quote           `json:"quote"`
	Applicant     Applicant              `json:"applicant"`
	InsuranceInfo map[string]interface{} `json:"insuranceInfo,omitempty"`
	Priority      string                 `json:"priority,omitempty"`
}

type Output struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notificationId,omitempty"`
	SentAt         string `json:"sentAt,omitempty"`
}
