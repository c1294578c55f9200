package repository

import (
	"paygate/internal/domain"

	"gorm.io/gorm"
)

type EventsRepo struct {
}

func InitEventsRepo() *EventsRepo {
	return &EventsRepo{}
}

func (r *EventsRepo) Create(tx *gorm.DB, event *domain.Events) error {
	return tx.Create(event).Error
}

func (r *EventsRepo) FindByID(tx *gorm.DB, id uint) (*domain.Events, error) {
	var event domain.Events
	return &event, preloadEvent(tx).First(&event, id).Error
}

func (r *EventsRepo) FindBySessionID(tx *gorm.DB, sessionID string) (*domain.Events, error) {
	var event domain.Events
	return &event, preloadEvent(tx).Where(&domain.Events{SessionID: sessionID}).First(&event).Error
}

func preloadEvent(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Project").Preload("Payment").Preload("Payment.Token").Preload("Payment.Products")
}
