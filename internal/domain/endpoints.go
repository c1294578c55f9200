package domain

import (
	"strings"
	"time"
)

type WebhookEndpoints struct {
	Model
	ID         uint           `gorm:"primaryKey"`
	ProjectID  uint           `gorm:"not null"`
	URL        string         `gorm:"type:text;not null"`
	Status     EndpointStatus `gorm:"type:int2"`
	EventTypes string         `gorm:"type:text"` // comma separated, empty = receive all
	Secret     string         `gorm:"type:text"` // aes-gcm encrypted, base64
	LastHitAt  *time.Time
}

type EndpointStatus uint8

const (
	ENDPOINT_ACTIVE EndpointStatus = iota
	ENDPOINT_DISABLED
)

var EndpointStatuses = [...]string{"ACTIVE", "DISABLED"}

func (s EndpointStatus) ToString() string {
	return EndpointStatuses[s]
}

func (s EndpointStatus) IsActive() bool {
	return s == ENDPOINT_ACTIVE
}

// ReceivesType reports whether the endpoint subscribes to the event type.
// An empty subscription list means all types.
func (e *WebhookEndpoints) ReceivesType(eventType string) bool {
	if strings.TrimSpace(e.EventTypes) == "" {
		return true
	}
	for _, t := range strings.Split(e.EventTypes, ",") {
		if strings.TrimSpace(t) == eventType {
			return true
		}
	}
	return false
}
