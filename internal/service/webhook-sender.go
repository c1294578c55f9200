package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/infra/postgres"
	"paygate/internal/logger"
	"paygate/internal/repository"
	"paygate/pkg/rr"
	"paygate/pkg/secrets"
	"paygate/pkg/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/proxy"
	"gorm.io/gorm"
)

const (
	DEFAULT_USER_AGENT = "paygate-webhook"
	DEFAULT_TIMEOUT    = 30 * time.Second
)

type WebhookSenderService struct {
	db         *gorm.DB
	endpoints  repository.Endpoints
	deliveries repository.Deliveries

	rr   rr.RoundRobin
	list *atomic.Pointer[[]string]

	secretKey []byte
	userAgent string
	timeout   time.Duration
	testDelay time.Duration
	sleeper   Sleeper

	l logger.Logger
}

func NewWebhookSenderService(db *gorm.DB, endpoints repository.Endpoints, deliveries repository.Deliveries, config *config.Config, l logger.Logger) *WebhookSenderService {
	var list atomic.Pointer[[]string]
	proxyList := config.ProxyList
	list.Store(&proxyList)

	userAgent := config.Webhook.UserAgent
	if userAgent == "" {
		userAgent = DEFAULT_USER_AGENT
	}

	timeout := DEFAULT_TIMEOUT
	if config.Webhook.TimeoutSeconds > 0 {
		timeout = time.Duration(config.Webhook.TimeoutSeconds) * time.Second
	}

	var testDelay time.Duration
	if config.Testing.Enabled {
		testDelay = config.Testing.DeliveryDelay
	}

	return &WebhookSenderService{
		db:         db,
		endpoints:  endpoints,
		deliveries: deliveries,
		rr:         rr.New(&list),
		list:       &list,
		secretKey:  config.SecretKey,
		userAgent:  userAgent,
		timeout:    timeout,
		testDelay:  testDelay,
		sleeper:    realSleeper{},
		l:          l,
	}
}

// Deliver runs the bounded retry loop against one endpoint. Every attempt,
// success or failure, writes exactly one audit row. A 2xx short-circuits the
// remaining attempts.
func (s *WebhookSenderService) Deliver(eventID, endpointID uint, payload domain.WebhookEventPayload, cfg domain.RetryConfig) domain.DeliveryResult {
	if cfg.MaxRetries <= 0 {
		cfg = domain.DefaultRetryConfig()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		msg := "marshal payload error: " + err.Error()
		return domain.DeliveryResult{Success: false, ErrorMessage: &msg}
	}

	// test environments simulate a slow receiver
	if s.testDelay > 0 {
		s.sleeper.Sleep(s.testDelay)
	}

	var result domain.DeliveryResult

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		result = s.attempt(eventID, endpointID, attempt, payload.Type, body)
		result.Attempts = attempt

		if result.Success {
			return result
		}

		if attempt < cfg.MaxRetries {
			s.sleeper.Sleep(BackoffDelay(cfg, attempt))
		}
	}

	return result
}

// one delivery attempt, audited whatever happens
func (s *WebhookSenderService) attempt(eventID, endpointID uint, attempt int, eventType string, body []byte) domain.DeliveryResult {
	// re-fetch fresh every attempt, the endpoint may have been deleted or
	// disabled since the previous one
	endpoint, err := s.endpoints.FindByID(s.db, endpointID)
	if err != nil {
		if postgres.IsNotFound(err) {
			err = domain.ErrEndpointNotFound
		}
		return s.failed(eventID, endpointID, attempt, nil, nil, err.Error(), "", body)
	}

	if !endpoint.Status.IsActive() {
		return s.failed(eventID, endpointID, attempt, nil, nil, domain.ErrEndpointInactive.Error(), endpoint.URL, body)
	}

	secret, err := secrets.Decrypt(s.secretKey, endpoint.Secret)
	if err != nil {
		return s.failed(eventID, endpointID, attempt, nil, nil, "decrypt secret error: "+err.Error(), endpoint.URL, body)
	}

	resp, err := s.send(endpoint.URL, secret, eventID, eventType, body)
	if err != nil {
		return s.failed(eventID, endpointID, attempt, nil, nil, err.Error(), endpoint.URL, body)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	truncated := utils.Truncate(string(respBody), domain.MAX_RESPONSE_BODY)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusLine := fmt.Sprintf("invalid status code: %d", resp.StatusCode)
		return s.failed(eventID, endpointID, attempt, &resp.StatusCode, &truncated, statusLine, endpoint.URL, body)
	}

	now := time.Now()
	s.audit(&domain.EventDeliveries{
		EventID:        eventID,
		EndpointID:     endpointID,
		AttemptNumber:  attempt,
		Status:         domain.DELIVERY_DELIVERED,
		HTTPStatusCode: &resp.StatusCode,
		ResponseBody:   &truncated,
		DeliveredAt:    &now,
	})

	if err := s.endpoints.TouchLastHit(s.db, endpointID, now); err != nil {
		s.l.Debug("touch last hit error: "+err.Error(), "endpoint_id", endpointID)
	}

	s.l.TemplWebhookInfo("webhook delivered", endpoint.URL, attempt, resp.StatusCode)

	return domain.DeliveryResult{
		Success:        true,
		HTTPStatusCode: &resp.StatusCode,
		ResponseBody:   &truncated,
	}
}

func (s *WebhookSenderService) failed(eventID, endpointID uint, attempt int, statusCode *int, respBody *string, errMsg string, url string, payload []byte) domain.DeliveryResult {
	s.audit(&domain.EventDeliveries{
		EventID:        eventID,
		EndpointID:     endpointID,
		AttemptNumber:  attempt,
		Status:         domain.DELIVERY_FAILED,
		HTTPStatusCode: statusCode,
		ResponseBody:   respBody,
		ErrorMessage:   &errMsg,
	})

	s.l.TemplWebhookErr("delivery attempt failed: "+errMsg, url, attempt, logger.NA, payload)

	return domain.DeliveryResult{
		Success:        false,
		HTTPStatusCode: statusCode,
		ResponseBody:   respBody,
		ErrorMessage:   &errMsg,
	}
}

// audit failures must never break the retry loop
func (s *WebhookSenderService) audit(row *domain.EventDeliveries) {
	if err := s.deliveries.Create(s.db, row); err != nil {
		s.l.Error("create delivery audit row error: "+err.Error(), logger.LS_WEBHOOKS, false, "event_id", row.EventID, "endpoint_id", row.EndpointID, "attempt", row.AttemptNumber)
	}
}

func (s *WebhookSenderService) send(url, secret string, eventID uint, eventType string, body []byte) (*http.Response, error) {
	client, err := s.newClient()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Authorization", "Bearer "+secret)
	req.Header.Set("X-Event-Id", fmt.Sprintf("%d", eventID))
	req.Header.Set("X-Event-Type", eventType)

	return client.Do(req)
}

// direct client, or SOCKS5 when an egress proxy list is configured
func (s *WebhookSenderService) newClient() (*http.Client, error) {
	stringProxy, ok := s.rr.Next()
	if !ok {
		return &http.Client{Timeout: s.timeout}, nil
	}

	socks, err := s.parseProxy(stringProxy)
	if err != nil {
		return nil, fmt.Errorf("can't parse proxy: %w", err)
	}

	auth := proxy.Auth{
		User:     socks.user,
		Password: socks.pass,
	}

	dialer, err := proxy.SOCKS5("tcp", socks.ip+":"+socks.port, &auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	dialContext := func(ctx context.Context, network, address string) (net.Conn, error) {
		return dialer.Dial(network, address)
	}

	transport := &http.Transport{
		DialContext:       dialContext,
		DisableKeepAlives: true,
	}

	return &http.Client{Transport: transport, Timeout: s.timeout}, nil
}

type parsedProxy struct {
	user string `validate:"required,gte=2"`
	pass string `validate:"required,gte=2"`
	ip   string `validate:"required,gte=2"`
	port string `validate:"required,gte=2"`
}

// login:password@ip:port
func (s *WebhookSenderService) parseProxy(str string) (parsedProxy, error) {
	splitA := strings.Split(str, ":") //  to [user pass@ip port]

	if len(splitA) != 3 {
		return parsedProxy{}, errors.New("invalid proxy format: given: " + str)
	}

	splitB := strings.Split(splitA[1], "@") // to [pass ip]

	if len(splitB) != 2 {
		return parsedProxy{}, errors.New("invalid proxy format: given: " + str)
	}

	var pp = parsedProxy{}

	pp.user = splitA[0]
	pp.pass = splitB[0]
	pp.ip = splitB[1]
	pp.port = splitA[2]

	validator := validator.New()
	err := validator.Struct(pp)
	if err != nil {
		return parsedProxy{}, err
	}

	return pp, nil
}

func (s *WebhookSenderService) UpdateList(proxies []string) {
	var validProxies []string

	for _, p := range proxies {
		_, err := s.parseProxy(p)
		if err != nil {
			s.l.Debug("invalid proxy: " + p)
			continue
		}
		validProxies = append(validProxies, p)
	}

	s.list.Store(&validProxies)
	s.l.Debug("proxy list updated", "count", s.rr.Count())
}

func (s *WebhookSenderService) GetList() []string {
	listPtr := s.list.Load()
	if listPtr == nil {
		return []string{}
	}

	return *listPtr
}
