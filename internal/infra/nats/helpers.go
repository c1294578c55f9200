package nats

import (
	"encoding/json"

	"paygate/pkg/nats/natsdomain"
)

// ReqSendNotification hands a notification off to the notification service.
// Rendering and email sending live there; this side only publishes.
func (n *NatsInfra) ReqSendNotification(projectID string, template string, props map[string]any, msgAction natsdomain.ActionType, dedupKey string) error {
	data, err := json.Marshal(natsdomain.ReqSendNotification{
		ProjectID: projectID,
		Template:  template,
		Props:     props,
	})
	if err != nil {
		return err
	}

	return n.JsPublishMsgId(natsdomain.SubjJsSendNotification.String(), data, natsdomain.NewMsgId(dedupKey, msgAction))
}
