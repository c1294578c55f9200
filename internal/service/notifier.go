package service

import (
	"fmt"

	"paygate/internal/domain"
	"paygate/internal/infra/nats"
	"paygate/internal/logger"
	"paygate/pkg/nats/natsdomain"
	"paygate/pkg/utils"
)

// NatsNotifier publishes merchant notifications to the notification
// service over jetstream. Rendering and the actual email sending are
// not our concern.
type NatsNotifier struct {
	n *nats.NatsInfra
	l logger.Logger
}

func NewNatsNotifier(n *nats.NatsInfra, l logger.Logger) *NatsNotifier {
	return &NatsNotifier{n: n, l: l}
}

func (s *NatsNotifier) Send(projectID string, template domain.NotificationTemplate, props domain.TemplateProps) error {
	action, eventKey, err := notifyAction(template, props)
	if err != nil {
		return err
	}

	return s.n.ReqSendNotification(projectID, template.ToString(), propsToMap(props), action, dedupKey(projectID, eventKey))
}

// dedupKey scopes jetstream dedup to one project and one event; without the
// project prefix, two projects' notifications would suppress each other
// inside the stream's duplicate window.
func dedupKey(projectID, eventKey string) string {
	return projectID + "_" + eventKey
}

// notifyAction maps a template to its jetstream action and the event-scoped
// part of the dedup key. The default branch catches templates added without
// wiring.
func notifyAction(template domain.NotificationTemplate, props domain.TemplateProps) (natsdomain.ActionType, string, error) {
	switch template {
	case domain.TEMPLATE_SALE_NOTIFICATION:
		if props.Sale == nil {
			return "", "", fmt.Errorf("notifier: sale template without sale props")
		}
		return natsdomain.MsgActionSale, props.Sale.SessionID, nil

	case domain.TEMPLATE_WEBHOOK_FAILURE:
		if props.Failure == nil {
			return "", "", fmt.Errorf("notifier: failure template without failure props")
		}
		return natsdomain.MsgActionFailure, props.Failure.SessionID + "_" + props.Failure.EndpointURL, nil

	case domain.TEMPLATE_NO_WEBHOOK_ENDPOINTS:
		if props.NoEndpoints == nil {
			return "", "", fmt.Errorf("notifier: no-endpoints template without props")
		}
		return natsdomain.MsgActionNoEndpoints, props.NoEndpoints.SessionID + "_" + props.NoEndpoints.EventType, nil

	default:
		return "", "", fmt.Errorf("notifier: unknown template %d", template)
	}
}

func propsToMap(props domain.TemplateProps) map[string]any {
	// TemplateProps marshals cleanly, the round trip cannot fail
	m, err := utils.Unmarshal[map[string]any](utils.MustMarshal(props))
	if err != nil {
		return map[string]any{}
	}
	return *m
}
