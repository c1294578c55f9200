package domain

import "github.com/shopspring/decimal"

type NotificationTemplate uint8

const (
	TEMPLATE_SALE_NOTIFICATION NotificationTemplate = iota
	TEMPLATE_WEBHOOK_FAILURE
	TEMPLATE_NO_WEBHOOK_ENDPOINTS
)

var NotificationTemplates = [...]string{"sale_notification", "webhook_failure", "no_webhook_endpoints"}

func (t NotificationTemplate) ToString() string {
	return NotificationTemplates[t]
}

// Tagged template props. The template selects which variant is set,
// so notifier dispatch stays exhaustive.
type TemplateProps struct {
	Sale        *SaleProps           `json:"sale,omitempty"`
	Failure     *WebhookFailureProps `json:"failure,omitempty"`
	NoEndpoints *NoEndpointsProps    `json:"no_endpoints,omitempty"`
}

type SaleProps struct {
	SessionID string          `json:"session_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

type WebhookFailureProps struct {
	SessionID   string `json:"session_id"`
	EndpointURL string `json:"endpoint_url"`
	Attempts    int    `json:"attempts"`
	Error       string `json:"error"`
}

type NoEndpointsProps struct {
	SessionID string `json:"session_id"`
	EventType string `json:"event_type"`
}
