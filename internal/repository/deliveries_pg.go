package repository

import (
	"paygate/internal/domain"

	"gorm.io/gorm"
)

type DeliveriesRepo struct {
}

func InitDeliveriesRepo() *DeliveriesRepo {
	return &DeliveriesRepo{}
}

// every attempt is an independent insert, no read-modify-write
func (r *DeliveriesRepo) Create(tx *gorm.DB, delivery *domain.EventDeliveries) error {
	return tx.Create(delivery).Error
}

func (r *DeliveriesRepo) CountAttempts(tx *gorm.DB, eventID, endpointID uint) (int, error) {
	var count int64
	err := tx.Model(&domain.EventDeliveries{}).Where(&domain.EventDeliveries{EventID: eventID, EndpointID: endpointID}).Count(&count).Error
	return int(count), err
}

func (r *DeliveriesRepo) ListForEvent(tx *gorm.DB, eventID uint) ([]domain.EventDeliveries, error) {
	var deliveries []domain.EventDeliveries
	err := tx.Where(&domain.EventDeliveries{EventID: eventID}).Order("endpoint_id, attempt_number").Find(&deliveries).Error
	return deliveries, err
}
