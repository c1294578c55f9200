package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/infra/cache"
	"paygate/internal/logger"
	"paygate/internal/repository"
	"paygate/pkg/utils"

	"gorm.io/gorm"
)

// throttle window for repeated "no endpoints" notifications per project+type
const NO_ENDPOINTS_NOTIFY_TTL = time.Hour

type FanoutService struct {
	db        *gorm.DB
	endpoints repository.Endpoints
	sender    WebhookSender
	notifier  Notifier
	l         logger.Logger
	throttle  *cache.Cache
	config    *config.Config
}

func NewFanoutService(db *gorm.DB, endpoints repository.Endpoints, sender WebhookSender, notifier Notifier, l logger.Logger, throttle *cache.Cache, config *config.Config) *FanoutService {
	return &FanoutService{
		db:        db,
		endpoints: endpoints,
		sender:    sender,
		notifier:  notifier,
		l:         l,
		throttle:  throttle,
		config:    config,
	}
}

// Dispatch fans the event out to every active endpoint subscribed to its
// type. Endpoint failures are isolated, one slow or broken endpoint never
// blocks the others. The returned result only reports, the event itself is
// already committed.
func (s *FanoutService) Dispatch(event *domain.Events) domain.FanoutResult {
	targets := s.resolveTargets(event)
	if len(targets) == 0 {
		s.notifyNoEndpoints(event)
		return domain.FanoutResult{
			FailedEndpoints:       []domain.FailedEndpoint{},
			NoEndpointsConfigured: true,
		}
	}

	s.notifySale(event)

	network := NetworkFromEnv(event.Payment.Token.Environment, s.config.Prod_env)
	payload := domain.BuildEventPayload(event, network)
	retryCfg := s.retryConfig()

	results := make([]domain.DeliveryResult, len(targets))

	var wg sync.WaitGroup
	for i, endpoint := range targets {
		wg.Add(1)

		go func(i int, endpoint domain.WebhookEndpoints) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errMsg := fmt.Sprintf("panic: %v", r)
					results[i] = domain.DeliveryResult{Success: false, ErrorMessage: &errMsg}
					s.l.TemplWebhookErr("delivery panic", endpoint.URL, 0, logger.NA, []byte(errMsg))
				}
			}()

			results[i] = s.sender.Deliver(event.ID, endpoint.ID, payload, retryCfg)
		}(i, endpoint)
	}
	wg.Wait()

	failed := []domain.FailedEndpoint{}
	for i, res := range results {
		if res.Success {
			continue
		}

		errMsg := "delivery failed"
		if res.ErrorMessage != nil {
			errMsg = *res.ErrorMessage
		}

		failed = append(failed, domain.FailedEndpoint{
			EndpointID: targets[i].ID,
			URL:        targets[i].URL,
			Error:      errMsg,
			Attempts:   res.Attempts,
		})
	}

	for _, f := range failed {
		s.notifyFailure(event, f)
	}

	return domain.FanoutResult{FailedEndpoints: failed, NoEndpointsConfigured: false}
}

func (s *FanoutService) resolveTargets(event *domain.Events) []domain.WebhookEndpoints {
	all, err := s.endpoints.FindActiveByProject(s.db, event.ProjectID)
	if err != nil {
		s.l.TemplWebhookErr("endpoint lookup failed", logger.NA, 0, logger.NA, []byte(err.Error()))
		return nil
	}

	targets := make([]domain.WebhookEndpoints, 0, len(all))
	for _, e := range all {
		if e.ReceivesType(event.Type) {
			targets = append(targets, e)
		}
	}
	return targets
}

func (s *FanoutService) retryConfig() domain.RetryConfig {
	cfg := domain.DefaultRetryConfig()
	if s.config.Webhook.MaxRetries > 0 {
		cfg.MaxRetries = s.config.Webhook.MaxRetries
	}
	if s.config.Webhook.BaseDelayMs > 0 {
		cfg.BaseDelayMs = s.config.Webhook.BaseDelayMs
	}
	if s.config.Webhook.JitterMs > 0 {
		cfg.JitterMs = s.config.Webhook.JitterMs
	}
	if s.config.Webhook.MaxDelayMs > 0 {
		cfg.MaxDelayMs = s.config.Webhook.MaxDelayMs
	}
	return cfg
}

// notifications are best-effort, delivery bookkeeping never depends on them

func (s *FanoutService) notifySale(event *domain.Events) {
	err := s.notifier.Send(event.Project.ProjectID, domain.TEMPLATE_SALE_NOTIFICATION, domain.TemplateProps{
		Sale: &domain.SaleProps{
			SessionID: event.SessionID,
			Amount:    event.Payment.AmountDecimal(),
			Currency:  event.Payment.Currency.ToString(),
		},
	})
	if err != nil {
		s.l.TemplNatsError("sale notification failed", logger.NA, err)
	}
}

func (s *FanoutService) notifyNoEndpoints(event *domain.Events) {
	key := "no_endpoints_" + strconv.FormatUint(uint64(event.ProjectID), 10) + "_" + event.Type
	if seen, err := utils.SafeCast[bool](s.throttle.Load(key)); err == nil && seen {
		return
	}
	s.throttle.Set(key, true, NO_ENDPOINTS_NOTIFY_TTL)

	err := s.notifier.Send(event.Project.ProjectID, domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS, domain.TemplateProps{
		NoEndpoints: &domain.NoEndpointsProps{SessionID: event.SessionID, EventType: event.Type},
	})
	if err != nil {
		s.l.TemplNatsError("no-endpoints notification failed", logger.NA, err)
	}
}

func (s *FanoutService) notifyFailure(event *domain.Events, f domain.FailedEndpoint) {
	err := s.notifier.Send(event.Project.ProjectID, domain.TEMPLATE_WEBHOOK_FAILURE, domain.TemplateProps{
		Failure: &domain.WebhookFailureProps{
			SessionID:   event.SessionID,
			EndpointURL: f.URL,
			Attempts:    f.Attempts,
			Error:       f.Error,
		},
	})
	if err != nil {
		s.l.TemplNatsError("failure notification failed", logger.NA, err)
	}
}
