package service

import (
	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/infra/cache"
	"paygate/internal/infra/nats"
	"paygate/internal/logger"
	"paygate/internal/repository"
	"paygate/pkg/nats/natsdomain"

	"gorm.io/gorm"
)

type Reconciler interface {
	// sequential loop, one malformed notification never aborts the batch
	ProcessBatch(txs []domain.TxNotification) error
}

type Fanout interface {
	Dispatch(event *domain.Events) domain.FanoutResult
}

type WebhookSender interface {
	Deliver(eventID, endpointID uint, payload domain.WebhookEventPayload, cfg domain.RetryConfig) domain.DeliveryResult
	UpdateList(proxies []string)
	GetList() []string
}

type Notifier interface {
	// best-effort, callers log and move on
	Send(projectID string, template domain.NotificationTemplate, props domain.TemplateProps) error
}

type Services struct {
	Reconciler    Reconciler
	Fanout        Fanout
	WebhookSender WebhookSender
	Notifier      Notifier
}

func NewServices(ns *natsdomain.Ns, db *gorm.DB, l logger.Logger, config *config.Config) *Services {
	n := &nats.NatsInfra{Ns: ns}

	repos := repository.New()

	sender := NewWebhookSenderService(db, repos.Endpoints, repos.Deliveries, config, l)
	notifier := NewNatsNotifier(n, l)
	fanout := NewFanoutService(db, repos.Endpoints, sender, notifier, l, cache.InitStorage(), config)
	reconciler := NewReconcilerService(db, repos.Payments, repos.Events, fanout, l, config)

	return &Services{
		Reconciler:    reconciler,
		Fanout:        fanout,
		WebhookSender: sender,
		Notifier:      notifier,
	}
}
