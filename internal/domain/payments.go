package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// amounts are stored in smallest units with 6 implied decimals
const MICRO_UNITS = 1_000_000

type Payments struct {
	Model
	ID             uint          `gorm:"primaryKey"`
	ProjectID      uint          `gorm:"not null"`
	TokenID        uint          `gorm:"not null"`
	Token          Tokens        `gorm:"foreignKey:TokenID"`
	Amount         int64         `gorm:"not null"` // micro units
	Currency       Currency      `gorm:"type:int2"`
	Recipient      string        `gorm:"type:text;not null"` // wallet address receiving the transfer
	IdempotencyKey *string       `gorm:"uniqueIndex"`
	TxHash         *string       `gorm:"uniqueIndex"`
	BlockNumber    *uint64
	Status         PaymentStatus `gorm:"type:int2"`
	ConfirmedAt    *time.Time
	Products       []Products    `gorm:"foreignKey:PaymentID"`
}

type Products struct {
	Model
	ID        uint   `gorm:"primaryKey"`
	PaymentID uint   `gorm:"not null"`
	Name      string `gorm:"type:text;not null"`
	Price     int64  `gorm:"not null"` // micro units
	Metadata  string // opaque json, forwarded as-is
}

type PaymentStatus uint8

const (
	PAYMENT_PENDING PaymentStatus = iota
	PAYMENT_CONFIRMED
	PAYMENT_FAILED
	PAYMENT_TIMED_OUT
)

var PaymentStatuses = [...]string{"PENDING", "CONFIRMED", "FAILED", "TIMED_OUT"}

func (s PaymentStatus) ToString() string {
	return PaymentStatuses[s]
}

func StrToPaymentStatus(s string) PaymentStatus {
	for i, statusName := range PaymentStatuses {
		if s == statusName {
			return PaymentStatus(i)
		}
	}
	return PAYMENT_PENDING
}

func (s PaymentStatus) IsConfirmed() bool {
	return s == PAYMENT_CONFIRMED
}

func (s PaymentStatus) IsTerminal() bool {
	return s != PAYMENT_PENDING
}

// AmountDecimal converts the stored micro unit amount to decimal space.
func (p *Payments) AmountDecimal() decimal.Decimal {
	return decimal.NewFromInt(p.Amount).Div(decimal.NewFromInt(MICRO_UNITS))
}
