package service

import (
	"sync"
	"time"

	"paygate/internal/domain"
	"paygate/internal/repository"

	"gorm.io/gorm"
)

// in-memory repository fakes, the db handle is ignored

type fakeEndpoints struct {
	mu      sync.Mutex
	byID    map[uint]*domain.WebhookEndpoints
	touched []uint
	findErr error
}

func newFakeEndpoints(endpoints ...*domain.WebhookEndpoints) *fakeEndpoints {
	f := &fakeEndpoints{byID: map[uint]*domain.WebhookEndpoints{}}
	for _, e := range endpoints {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEndpoints) Create(tx *gorm.DB, endpoint *domain.WebhookEndpoints) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[endpoint.ID] = endpoint
	return nil
}

func (f *fakeEndpoints) FindByID(tx *gorm.DB, id uint) (*domain.WebhookEndpoints, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEndpoints) FindActiveByProject(tx *gorm.DB, projectID uint) ([]domain.WebhookEndpoints, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.WebhookEndpoints
	for _, e := range f.byID {
		if e.ProjectID == projectID && e.Status.IsActive() {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEndpoints) TouchLastHit(tx *gorm.DB, id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

type fakeDeliveries struct {
	mu   sync.Mutex
	rows []domain.EventDeliveries
}

func (f *fakeDeliveries) Create(tx *gorm.DB, delivery *domain.EventDeliveries) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, *delivery)
	return nil
}

func (f *fakeDeliveries) CountAttempts(tx *gorm.DB, eventID, endpointID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.EventID == eventID && r.EndpointID == endpointID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDeliveries) ListForEvent(tx *gorm.DB, eventID uint) ([]domain.EventDeliveries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventDeliveries
	for _, r := range f.rows {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDeliveries) forEndpoint(eventID, endpointID uint) []domain.EventDeliveries {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventDeliveries
	for _, r := range f.rows {
		if r.EventID == eventID && r.EndpointID == endpointID {
			out = append(out, r)
		}
	}
	return out
}

type confirmCall struct {
	paymentID uint
	fields    repository.ConfirmFields
}

type fakePayments struct {
	mu         sync.Mutex
	byTxHash   map[string]*domain.Payments
	confirms   []confirmCall
	confirmErr error
}

func newFakePayments() *fakePayments {
	return &fakePayments{byTxHash: map[string]*domain.Payments{}}
}

func (f *fakePayments) Create(tx *gorm.DB, payment *domain.Payments) error {
	return nil
}

func (f *fakePayments) FindByID(tx *gorm.DB, id uint) (*domain.Payments, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayments) FindByTxHash(tx *gorm.DB, txHash string) (*domain.Payments, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byTxHash[txHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePayments) Confirm(tx *gorm.DB, paymentID uint, fields repository.ConfirmFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirms = append(f.confirms, confirmCall{paymentID, fields})
	return nil
}

type fakeEvents struct {
	mu          sync.Mutex
	bySessionID map[string]*domain.Events
	byID        map[uint]*domain.Events
	reloadErr   error
}

func newFakeEvents(events ...*domain.Events) *fakeEvents {
	f := &fakeEvents{bySessionID: map[string]*domain.Events{}, byID: map[uint]*domain.Events{}}
	for _, e := range events {
		f.bySessionID[e.SessionID] = e
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEvents) Create(tx *gorm.DB, event *domain.Events) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bySessionID[event.SessionID] = event
	f.byID[event.ID] = event
	return nil
}

func (f *fakeEvents) FindByID(tx *gorm.DB, id uint) (*domain.Events, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reloadErr != nil {
		return nil, f.reloadErr
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeEvents) FindBySessionID(tx *gorm.DB, sessionID string) (*domain.Events, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.bySessionID[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

// instant sleeper keeps retry tests fast
type noSleep struct{}

func (noSleep) Sleep(d time.Duration) {}

type notifierCall struct {
	projectID string
	template  domain.NotificationTemplate
	props     domain.TemplateProps
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
	err   error
}

func (f *fakeNotifier) Send(projectID string, template domain.NotificationTemplate, props domain.TemplateProps) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifierCall{projectID, template, props})
	return f.err
}

func (f *fakeNotifier) byTemplate(template domain.NotificationTemplate) []notifierCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifierCall
	for _, c := range f.calls {
		if c.template == template {
			out = append(out, c)
		}
	}
	return out
}
