package natsdomain

import (
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// nats struct
type Ns struct {
	Nc *nats.Conn
	Js jetstream.JetStream
}

// request to the notification service (rendering + email sending live there)
type ReqSendNotification struct {
	ProjectID string         `json:"project_id"`
	Template  string         `json:"template"`
	Props     map[string]any `json:"props"`
}
