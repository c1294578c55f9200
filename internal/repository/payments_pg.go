package repository

import (
	"paygate/internal/domain"

	"gorm.io/gorm"
)

type PaymentsRepo struct {
}

func InitPaymentsRepo() *PaymentsRepo {
	return &PaymentsRepo{}
}

func (r *PaymentsRepo) Create(tx *gorm.DB, payment *domain.Payments) error {
	return tx.Create(payment).Error
}

func (r *PaymentsRepo) FindByID(tx *gorm.DB, id uint) (*domain.Payments, error) {
	var payment domain.Payments
	return &payment, tx.Preload("Products").Preload("Token").First(&payment, id).Error
}

func (r *PaymentsRepo) FindByTxHash(tx *gorm.DB, txHash string) (*domain.Payments, error) {
	var payment domain.Payments
	return &payment, tx.Where("tx_hash = ?", txHash).First(&payment).Error
}

func (r *PaymentsRepo) Confirm(tx *gorm.DB, paymentID uint, fields ConfirmFields) error {
	updates := map[string]any{
		"status":       domain.PAYMENT_CONFIRMED,
		"tx_hash":      fields.TxHash,
		"block_number": fields.BlockNumber,
		"confirmed_at": fields.ConfirmedAt,
	}

	// currency is advisory, existing value is preserved when unresolved
	if !fields.Currency.IsUnknown() {
		updates["currency"] = fields.Currency
	}

	return tx.Model(&domain.Payments{}).Where("id = ?", paymentID).Updates(updates).Error
}
