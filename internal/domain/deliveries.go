package domain

import "time"

// audit row, exactly one per delivery attempt
type EventDeliveries struct {
	ID             uint           `gorm:"primaryKey"`
	EventID        uint           `gorm:"not null;index:idx_event_endpoint"`
	EndpointID     uint           `gorm:"not null;index:idx_event_endpoint"`
	AttemptNumber  int            `gorm:"not null"` // 1-based, never skips
	Status         DeliveryStatus `gorm:"type:int2"`
	HTTPStatusCode *int
	ResponseBody   *string    `gorm:"type:text"` // truncated to MAX_RESPONSE_BODY
	ErrorMessage   *string    `gorm:"type:text"`
	DeliveredAt    *time.Time // set only on success
	CreatedAt      time.Time
}

const MAX_RESPONSE_BODY = 1000

type DeliveryStatus uint8

const (
	DELIVERY_DELIVERED DeliveryStatus = iota
	DELIVERY_FAILED
)

var DeliveryStatuses = [...]string{"DELIVERED", "FAILED"}

func (s DeliveryStatus) ToString() string {
	return DeliveryStatuses[s]
}

type RetryConfig struct {
	MaxRetries  int
	BaseDelayMs int
	JitterMs    int
	MaxDelayMs  int
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  3,
		BaseDelayMs: 1000,
		JitterMs:    1000,
		MaxDelayMs:  30000,
	}
}

type DeliveryResult struct {
	Success        bool
	HTTPStatusCode *int
	ResponseBody   *string
	ErrorMessage   *string
	Attempts       int
}

type FailedEndpoint struct {
	EndpointID uint
	URL        string
	Error      string
	Attempts   int
}

type FanoutResult struct {
	FailedEndpoints       []FailedEndpoint
	NoEndpointsConfigured bool
}
