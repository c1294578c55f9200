package repository

import (
	"time"

	"paygate/internal/domain"

	"gorm.io/gorm"
)

type Payments interface {
	Create(tx *gorm.DB, payment *domain.Payments) error
	FindByID(tx *gorm.DB, id uint) (*domain.Payments, error)
	FindByTxHash(tx *gorm.DB, txHash string) (*domain.Payments, error)
	Confirm(tx *gorm.DB, paymentID uint, fields ConfirmFields) error
}

// fields written in the single confirmation update
type ConfirmFields struct {
	TxHash      string
	BlockNumber uint64
	ConfirmedAt time.Time
	Currency    domain.Currency // CURRENCY_UNKNOWN leaves the stored value untouched
}

type Events interface {
	Create(tx *gorm.DB, event *domain.Events) error
	FindByID(tx *gorm.DB, id uint) (*domain.Events, error)
	FindBySessionID(tx *gorm.DB, sessionID string) (*domain.Events, error)
}

type Endpoints interface {
	Create(tx *gorm.DB, endpoint *domain.WebhookEndpoints) error
	FindByID(tx *gorm.DB, id uint) (*domain.WebhookEndpoints, error)
	FindActiveByProject(tx *gorm.DB, projectID uint) ([]domain.WebhookEndpoints, error)
	TouchLastHit(tx *gorm.DB, id uint, at time.Time) error
}

type Deliveries interface {
	Create(tx *gorm.DB, delivery *domain.EventDeliveries) error
	CountAttempts(tx *gorm.DB, eventID, endpointID uint) (int, error)
	ListForEvent(tx *gorm.DB, eventID uint) ([]domain.EventDeliveries, error)
}

type Repositories struct {
	Payments   Payments
	Events     Events
	Endpoints  Endpoints
	Deliveries Deliveries
}

func New() *Repositories {
	return &Repositories{
		Payments:   InitPaymentsRepo(),
		Events:     InitEventsRepo(),
		Endpoints:  InitEndpointsRepo(),
		Deliveries: InitDeliveriesRepo(),
	}
}
