package service

import (
	"errors"
	"fmt"
	"time"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/infra/postgres"
	"paygate/internal/logger"
	"paygate/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allowed drift between the memo amount and the on-chain transfer amount,
// expressed in decimal token units
var amountTolerance = decimal.RequireFromString("0.000001")

type ReconcilerService struct {
	db       *gorm.DB
	payments repository.Payments
	events   repository.Events
	fanout   Fanout
	l        logger.Logger
	config   *config.Config
}

func NewReconcilerService(db *gorm.DB, payments repository.Payments, events repository.Events, fanout Fanout, l logger.Logger, config *config.Config) *ReconcilerService {
	return &ReconcilerService{
		db:       db,
		payments: payments,
		events:   events,
		fanout:   fanout,
		l:        l,
		config:   config,
	}
}

// skip conditions are routine, they only get debug logging
var expectedSkips = []error{
	domain.ErrTxFailed,
	domain.ErrNoTransfers,
	domain.ErrNoMemo,
	domain.ErrAlreadyProcessed,
	domain.ErrEventNotFound,
	domain.ErrAmountMismatch,
}

func isExpectedSkip(err error) bool {
	for _, skip := range expectedSkips {
		if errors.Is(err, skip) {
			return true
		}
	}
	return false
}

// ProcessBatch runs every notification through the reconciliation state
// machine, each one isolated. A malformed or mismatched transaction is
// skipped and the loop continues; only a reload failure after a committed
// confirmation propagates out, because at that point the webhook fan-out
// was lost.
func (s *ReconcilerService) ProcessBatch(txs []domain.TxNotification) error {
	for i := range txs {
		err := s.processOne(&txs[i])
		if err == nil {
			continue
		}

		if errors.Is(err, domain.ErrEventReload) {
			return err
		}

		if isExpectedSkip(err) {
			s.l.Debug("tx skipped: "+err.Error(), "signature", txs[i].Signature)
			continue
		}

		s.l.TemplReconcileErr(err.Error(), logger.GenErrorId(), txs[i].Signature, logger.NA, decimal.Zero, logger.NA)
	}

	return nil
}

func (s *ReconcilerService) processOne(tx *domain.TxNotification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reconcile panic: %v", r)
		}
	}()

	if tx.HasError() {
		return domain.ErrTxFailed
	}
	if len(tx.TokenTransfers) == 0 {
		return domain.ErrNoTransfers
	}

	memo, ok := DecodeMemo(tx.Instructions)
	if !ok || memo.SessionID == "" {
		return domain.ErrNoMemo
	}

	// idempotency gate: a signature is confirmed at most once
	_, err = s.payments.FindByTxHash(s.db, tx.Signature)
	if err == nil {
		return domain.ErrAlreadyProcessed
	}
	if !postgres.IsNotFound(err) {
		return fmt.Errorf("tx hash lookup: %w", err)
	}

	event, err := s.events.FindBySessionID(s.db, memo.SessionID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("session lookup: %w", err)
	}

	expected, err := decimal.NewFromString(memo.Amount)
	if err != nil {
		return fmt.Errorf("%w: bad memo amount %q", domain.ErrAmountMismatch, memo.Amount)
	}

	transfer := tx.TokenTransfers[0]
	if transfer.TokenAmount.Sub(expected).Abs().GreaterThan(amountTolerance) {
		return fmt.Errorf("%w: got %s, want %s", domain.ErrAmountMismatch, transfer.TokenAmount, expected)
	}

	network := NetworkFromEnv(event.Payment.Token.Environment, s.config.Prod_env)
	currency := ResolveCurrency(network, transfer.Mint)

	err = s.payments.Confirm(s.db, event.PaymentID, repository.ConfirmFields{
		TxHash:      tx.Signature,
		BlockNumber: tx.Slot,
		ConfirmedAt: time.Unix(tx.Timestamp, 0),
		Currency:    currency,
	})
	if err != nil {
		return fmt.Errorf("confirm payment %d: %w", event.PaymentID, err)
	}

	s.l.TemplReconcileInfo("payment confirmed", logger.NA, tx.Signature, memo.SessionID, transfer.TokenAmount, currency.ToString())

	// re-read with associations so the fan-out payload reflects the commit
	reloaded, err := s.events.FindByID(s.db, event.ID)
	if err != nil {
		s.l.TemplReconcileErr("event reload failed", logger.GenErrorId(), tx.Signature, memo.SessionID, transfer.TokenAmount, currency.ToString())
		return fmt.Errorf("%w: event %d: %v", domain.ErrEventReload, event.ID, err)
	}

	s.fanout.Dispatch(reloaded)
	return nil
}
