package service

import (
	"testing"

	"paygate/internal/domain"
	"paygate/pkg/nats/natsdomain"

	"github.com/shopspring/decimal"
)

func TestNotifyActionMapping(t *testing.T) {
	tests := []struct {
		name       string
		template   domain.NotificationTemplate
		props      domain.TemplateProps
		wantAction natsdomain.ActionType
		wantKey    string
	}{
		{
			"sale",
			domain.TEMPLATE_SALE_NOTIFICATION,
			domain.TemplateProps{Sale: &domain.SaleProps{SessionID: "sess_1", Amount: decimal.New(105, -1), Currency: "USDC"}},
			natsdomain.MsgActionSale,
			"sess_1",
		},
		{
			"failure",
			domain.TEMPLATE_WEBHOOK_FAILURE,
			domain.TemplateProps{Failure: &domain.WebhookFailureProps{SessionID: "sess_1", EndpointURL: "https://a.example", Attempts: 3}},
			natsdomain.MsgActionFailure,
			"sess_1_https://a.example",
		},
		{
			"no endpoints",
			domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS,
			domain.TemplateProps{NoEndpoints: &domain.NoEndpointsProps{SessionID: "sess_1", EventType: domain.EVENT_PAYMENT}},
			natsdomain.MsgActionNoEndpoints,
			"sess_1_" + domain.EVENT_PAYMENT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, key, err := notifyAction(tt.template, tt.props)
			if err != nil {
				t.Fatal(err)
			}
			if action != tt.wantAction {
				t.Errorf("action = %q, want %q", action, tt.wantAction)
			}
			if key != tt.wantKey {
				t.Errorf("dedup key = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

func TestDedupKeyScopedToProjectAndEvent(t *testing.T) {
	// two projects hitting the same condition must not suppress each other
	// inside the jetstream duplicate window
	_, keyA, err := notifyAction(domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS, domain.TemplateProps{
		NoEndpoints: &domain.NoEndpointsProps{SessionID: "sess_1", EventType: domain.EVENT_PAYMENT},
	})
	if err != nil {
		t.Fatal(err)
	}

	msgA := natsdomain.NewMsgId(dedupKey("proj_a", keyA), natsdomain.MsgActionNoEndpoints)
	msgB := natsdomain.NewMsgId(dedupKey("proj_b", keyA), natsdomain.MsgActionNoEndpoints)
	if msgA == msgB {
		t.Fatalf("msg id %q identical for two different projects", msgA)
	}

	// two events failing to the same endpoint are distinct alerts
	_, failA, err := notifyAction(domain.TEMPLATE_WEBHOOK_FAILURE, domain.TemplateProps{
		Failure: &domain.WebhookFailureProps{SessionID: "sess_1", EndpointURL: "https://a.example"},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, failB, err := notifyAction(domain.TEMPLATE_WEBHOOK_FAILURE, domain.TemplateProps{
		Failure: &domain.WebhookFailureProps{SessionID: "sess_2", EndpointURL: "https://a.example"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if dedupKey("proj_a", failA) == dedupKey("proj_a", failB) {
		t.Fatal("failure dedup key must include the event")
	}
}

func TestNotifyActionMissingProps(t *testing.T) {
	if _, _, err := notifyAction(domain.TEMPLATE_SALE_NOTIFICATION, domain.TemplateProps{}); err == nil {
		t.Error("sale template without props must error")
	}
	if _, _, err := notifyAction(domain.NotificationTemplate(99), domain.TemplateProps{}); err == nil {
		t.Error("unknown template must error")
	}
}

func TestPropsToMapKeepsVariant(t *testing.T) {
	m := propsToMap(domain.TemplateProps{
		NoEndpoints: &domain.NoEndpointsProps{EventType: domain.EVENT_PAYMENT},
	})

	if _, ok := m["no_endpoints"]; !ok {
		t.Fatalf("map = %v, missing no_endpoints", m)
	}
	if _, ok := m["sale"]; ok {
		t.Error("unset variants must be omitted")
	}
}
