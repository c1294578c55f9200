package service

import (
	"sync"
	"testing"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/infra/cache"
	"paygate/internal/logger"
)

type fakeSender struct {
	mu       sync.Mutex
	calls    []uint
	failFor  map[uint]bool
	panicFor map[uint]bool
}

func (f *fakeSender) Deliver(eventID, endpointID uint, payload domain.WebhookEventPayload, cfg domain.RetryConfig) domain.DeliveryResult {
	f.mu.Lock()
	f.calls = append(f.calls, endpointID)
	f.mu.Unlock()

	if f.panicFor[endpointID] {
		panic("endpoint blew up")
	}
	if f.failFor[endpointID] {
		msg := "connection refused"
		return domain.DeliveryResult{Success: false, ErrorMessage: &msg, Attempts: 3}
	}
	return domain.DeliveryResult{Success: true, Attempts: 1}
}

func (f *fakeSender) UpdateList(proxies []string) {}
func (f *fakeSender) GetList() []string           { return nil }

func paymentEvent(id uint) *domain.Events {
	return &domain.Events{
		ID:        id,
		ProjectID: 1,
		Project:   domain.Projects{ID: 1, ProjectID: "proj_1", Name: "shop"},
		SessionID: "sess_1",
		Type:      domain.EVENT_PAYMENT,
		PaymentID: 10,
		Payment: domain.Payments{
			ID:     10,
			Amount: 10_500_000,
			Status: domain.PAYMENT_CONFIRMED,
			Token:  domain.Tokens{Environment: domain.TOKEN_ENV_LIVE},
		},
	}
}

func newTestFanout(endpoints *fakeEndpoints, sender *fakeSender, notifier *fakeNotifier) *FanoutService {
	l := logger.Init(&config.Config{})
	return NewFanoutService(nil, endpoints, sender, notifier, l, cache.InitStorage(), &config.Config{})
}

func TestDispatchIsolatesEndpointFailures(t *testing.T) {
	endpoints := newFakeEndpoints(
		&domain.WebhookEndpoints{ID: 1, ProjectID: 1, URL: "https://a.example", Status: domain.ENDPOINT_ACTIVE},
		&domain.WebhookEndpoints{ID: 2, ProjectID: 1, URL: "https://b.example", Status: domain.ENDPOINT_ACTIVE},
		&domain.WebhookEndpoints{ID: 3, ProjectID: 1, URL: "https://c.example", Status: domain.ENDPOINT_ACTIVE},
	)
	sender := &fakeSender{failFor: map[uint]bool{2: true}}
	notifier := &fakeNotifier{}

	result := newTestFanout(endpoints, sender, notifier).Dispatch(paymentEvent(1))

	if result.NoEndpointsConfigured {
		t.Fatal("endpoints were configured")
	}
	if len(sender.calls) != 3 {
		t.Fatalf("deliver calls = %d, want 3", len(sender.calls))
	}
	if len(result.FailedEndpoints) != 1 {
		t.Fatalf("failed = %d, want 1", len(result.FailedEndpoints))
	}
	if result.FailedEndpoints[0].EndpointID != 2 {
		t.Errorf("failed endpoint = %d, want 2", result.FailedEndpoints[0].EndpointID)
	}
	if result.FailedEndpoints[0].Attempts != 3 {
		t.Errorf("failed attempts = %d, want 3", result.FailedEndpoints[0].Attempts)
	}

	if n := len(notifier.byTemplate(domain.TEMPLATE_SALE_NOTIFICATION)); n != 1 {
		t.Errorf("sale notifications = %d, want 1", n)
	}
	failures := notifier.byTemplate(domain.TEMPLATE_WEBHOOK_FAILURE)
	if len(failures) != 1 {
		t.Fatalf("failure notifications = %d, want 1", len(failures))
	}
	if failures[0].props.Failure.EndpointURL != "https://b.example" {
		t.Errorf("failure url = %q", failures[0].props.Failure.EndpointURL)
	}
}

func TestDispatchSurvivesSenderPanic(t *testing.T) {
	endpoints := newFakeEndpoints(
		&domain.WebhookEndpoints{ID: 1, ProjectID: 1, URL: "https://a.example", Status: domain.ENDPOINT_ACTIVE},
		&domain.WebhookEndpoints{ID: 2, ProjectID: 1, URL: "https://b.example", Status: domain.ENDPOINT_ACTIVE},
	)
	sender := &fakeSender{panicFor: map[uint]bool{1: true}}
	notifier := &fakeNotifier{}

	result := newTestFanout(endpoints, sender, notifier).Dispatch(paymentEvent(1))

	if len(result.FailedEndpoints) != 1 {
		t.Fatalf("failed = %d, want 1", len(result.FailedEndpoints))
	}
	if result.FailedEndpoints[0].EndpointID != 1 {
		t.Errorf("failed endpoint = %d, want 1", result.FailedEndpoints[0].EndpointID)
	}
}

func TestDispatchNoEndpoints(t *testing.T) {
	notifier := &fakeNotifier{}
	fanout := newTestFanout(newFakeEndpoints(), &fakeSender{}, notifier)

	result := fanout.Dispatch(paymentEvent(1))

	if !result.NoEndpointsConfigured {
		t.Fatal("expected no-endpoints flag")
	}
	if result.FailedEndpoints == nil || len(result.FailedEndpoints) != 0 {
		t.Fatalf("failed = %v, want empty slice", result.FailedEndpoints)
	}
	if n := len(notifier.byTemplate(domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS)); n != 1 {
		t.Fatalf("no-endpoints notifications = %d, want 1", n)
	}
	if n := len(notifier.byTemplate(domain.TEMPLATE_SALE_NOTIFICATION)); n != 0 {
		t.Errorf("sale notifications = %d, want 0", n)
	}

	// repeat dispatch inside the throttle window stays quiet
	fanout.Dispatch(paymentEvent(2))
	if n := len(notifier.byTemplate(domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS)); n != 1 {
		t.Errorf("no-endpoints notifications after repeat = %d, want 1", n)
	}
}

func TestDispatchFiltersByEventType(t *testing.T) {
	endpoints := newFakeEndpoints(
		&domain.WebhookEndpoints{ID: 1, ProjectID: 1, URL: "https://all.example", Status: domain.ENDPOINT_ACTIVE},
		&domain.WebhookEndpoints{ID: 2, ProjectID: 1, URL: "https://payments.example", Status: domain.ENDPOINT_ACTIVE, EventTypes: domain.EVENT_PAYMENT},
		&domain.WebhookEndpoints{ID: 3, ProjectID: 1, URL: "https://other.example", Status: domain.ENDPOINT_ACTIVE, EventTypes: "REFUND"},
	)
	sender := &fakeSender{}

	newTestFanout(endpoints, sender, &fakeNotifier{}).Dispatch(paymentEvent(1))

	if len(sender.calls) != 2 {
		t.Fatalf("deliver calls = %d, want 2", len(sender.calls))
	}
	for _, id := range sender.calls {
		if id == 3 {
			t.Error("endpoint 3 is not subscribed to PAYMENT")
		}
	}
}
