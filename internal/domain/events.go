package domain

const EVENT_PAYMENT = "PAYMENT"

type Events struct {
	Model
	ID        uint     `gorm:"primaryKey"`
	ProjectID uint     `gorm:"not null"`
	Project   Projects `gorm:"foreignKey:ProjectID"`
	SessionID string   `gorm:"unique;not null"` // correlation key, matched against the tx memo
	Type      string   `gorm:"type:varchar(32)"`
	Metadata  string   // opaque json, forwarded as-is
	PaymentID uint     `gorm:"not null"`
	Payment   Payments `gorm:"foreignKey:PaymentID"`
}
