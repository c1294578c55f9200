package natsdomain

// subjects for nats

// .js. - jetstream
var SubjectsJetStream = [...]string{"notifications.js.send"}

// .core. - nats core
var Subjects = [...]string{"notifications.core.ping"}

type SubjType uint8
type SubjJsType uint8

// nats core subjects
const (
	SubjPing SubjType = iota
)

// nats jetstream subjects
const (
	SubjJsSendNotification SubjJsType = iota
)

func (s SubjType) String() string {
	return Subjects[s]
}

func (s SubjJsType) String() string {
	return SubjectsJetStream[s]
}

type ActionType string

const (
	MsgActionSale        ActionType = "sale"
	MsgActionFailure     ActionType = "webhook_failure"
	MsgActionNoEndpoints ActionType = "no_endpoints"
)
