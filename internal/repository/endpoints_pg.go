package repository

import (
	"time"

	"paygate/internal/domain"

	"gorm.io/gorm"
)

type EndpointsRepo struct {
}

func InitEndpointsRepo() *EndpointsRepo {
	return &EndpointsRepo{}
}

func (r *EndpointsRepo) Create(tx *gorm.DB, endpoint *domain.WebhookEndpoints) error {
	return tx.Create(endpoint).Error
}

func (r *EndpointsRepo) FindByID(tx *gorm.DB, id uint) (*domain.WebhookEndpoints, error) {
	var endpoint domain.WebhookEndpoints
	return &endpoint, tx.First(&endpoint, id).Error
}

func (r *EndpointsRepo) FindActiveByProject(tx *gorm.DB, projectID uint) ([]domain.WebhookEndpoints, error) {
	var endpoints []domain.WebhookEndpoints
	// status is queried explicitly, ACTIVE is the zero value and a struct
	// condition would drop it
	err := tx.Where("project_id = ? AND status = ?", projectID, domain.ENDPOINT_ACTIVE).Find(&endpoints).Error
	return endpoints, err
}

func (r *EndpointsRepo) TouchLastHit(tx *gorm.DB, id uint, at time.Time) error {
	return tx.Model(&domain.WebhookEndpoints{}).Where("id = ?", id).Update("last_hit_at", at).Error
}
