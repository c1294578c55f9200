package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplReconcileErr(message string, errorId string, signature string, sessionId string, amount decimal.Decimal, currency string) string {
	l.Error(message, LS_RECONCILE, true, "signature", signature, "session_id", sessionId, "amount", amount.String(), "currency", currency, "error_id", errorId)
	return errorId
}

func (l Logger) TemplReconcileInfo(message string, errorId string, signature string, sessionId string, amount decimal.Decimal, currency string) string {
	l.Info(message, LS_RECONCILE, true, "signature", signature, "session_id", sessionId, "amount", amount.String(), "currency", currency, "error_id", errorId)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", err.Error(), "ipv4", ipv4)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, LS_NATS, true, "nats_url", natsUrl, "error", err.Error())
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, LS_NATS, true, "nats_url", natsUrl, "error", NA)
}

func (l Logger) TemplWebhookErr(message, url string, attempt int, proxy string, payload []byte) {
	l.Error(message, LS_WEBHOOKS, true, "url", url, "attempt", attempt, "proxy", proxy, "payload", string(payload))
}

func (l Logger) TemplWebhookInfo(message, url string, attempt int, statusCode int) {
	l.Info(message, LS_WEBHOOKS, true, "url", url, "attempt", attempt, "status_code", statusCode)
}
