package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

type stubDB struct {
	pingErr error
}

func (s *stubDB) Ping(context.Context) error { return s.pingErr }

type stubPubSub struct {
	pingErr error
}

func (s *stubPubSub) Ping(context.Context) error            { return s.pingErr }
func (s *stubPubSub) DomainPublisher() *gcppubsub.Publisher { return nil }

type stubRepo struct {
	events    []models.OutboxEvent
	fetchErr  error
	published []uuid.UUID
	failed    map[uuid.UUID]string
}

func (s *stubRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if limit < len(s.events) {
		return s.events[:limit], nil
	}
	return s.events, nil
}

func (s *stubRepo) MarkPublished(id uuid.UUID) error {
	s.published = append(s.published, id)
	return nil
}

func (s *stubRepo) MarkFailed(id uuid.UUID, err error) error {
	if s.failed == nil {
		s.failed = map[uuid.UUID]string{}
	}
	s.failed[id] = err.Error()
	return nil
}

type stubResult struct {
	err error
}

func (r stubResult) Get(context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "server-id", nil
}

type stubPublisher struct {
	messages []*gcppubsub.Message
	errs     map[string]error
}

func (p *stubPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	p.messages = append(p.messages, msg)
	return stubResult{err: p.errs[msg.Attributes["event_id"]]}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "outbox-publisher-test", Output: io.Discard})
}

func outboxEvent(attempts int) models.OutboxEvent {
	payload, _ := json.Marshal(map[string]any{"version": 1})
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventTransactionCreated,
		AggregateType: enums.AggregateTransaction,
		AggregateID:   uuid.New(),
		Payload:       payload,
		AttemptCount:  attempts,
		CreatedAt:     time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func newTestService(t *testing.T, repo *stubRepo, pub *stubPublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     testLogger(),
		DB:         &stubDB{},
		PubSub:     &stubPubSub{},
		Repository: repo,
		Publisher:  pub,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	base := ServiceParams{
		Config:     &config.Config{},
		Logger:     testLogger(),
		DB:         &stubDB{},
		PubSub:     &stubPubSub{},
		Repository: &stubRepo{},
		Publisher:  &stubPublisher{},
	}

	mutations := []func(*ServiceParams){
		func(p *ServiceParams) { p.Config = nil },
		func(p *ServiceParams) { p.Logger = nil },
		func(p *ServiceParams) { p.DB = nil },
		func(p *ServiceParams) { p.PubSub = nil },
		func(p *ServiceParams) { p.Repository = nil },
	}
	for i, mutate := range mutations {
		params := base
		mutate(&params)
		if _, err := NewService(params); err == nil {
			t.Fatalf("case %d: expected constructor error", i)
		}
	}
}

func TestNewServiceAppliesConfigDefaults(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubPublisher{})

	if svc.batchSize != defaultBatchSize {
		t.Fatalf("expected default batch size, got %d", svc.batchSize)
	}
	if svc.maxAttempts != defaultMaxAttempts {
		t.Fatalf("expected default max attempts, got %d", svc.maxAttempts)
	}
	if svc.pollInterval != time.Duration(defaultPollMs)*time.Millisecond {
		t.Fatalf("expected default poll interval, got %s", svc.pollInterval)
	}
}

func TestProcessBatchPublishesAndMarks(t *testing.T) {
	event := outboxEvent(0)
	repo := &stubRepo{events: []models.OutboxEvent{event}}
	pub := &stubPublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to report work done")
	}
	if len(repo.published) != 1 || repo.published[0] != event.ID {
		t.Fatalf("expected event marked published, got %v", repo.published)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected one published message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if string(msg.Data) != string(event.Payload) {
		t.Fatalf("payload must pass through unchanged, got %s", msg.Data)
	}
	for key, want := range map[string]string{
		"event_id":       event.ID.String(),
		"event_type":     string(enums.EventTransactionCreated),
		"aggregate_type": string(enums.AggregateTransaction),
		"aggregate_id":   event.AggregateID.String(),
	} {
		if msg.Attributes[key] != want {
			t.Fatalf("attribute %s = %q, want %q", key, msg.Attributes[key], want)
		}
	}
}

func TestProcessBatchMarksFailures(t *testing.T) {
	good := outboxEvent(0)
	bad := outboxEvent(3)
	repo := &stubRepo{events: []models.OutboxEvent{good, bad}}
	pub := &stubPublisher{errs: map[string]error{
		bad.ID.String(): errors.New("topic unavailable"),
	}}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to report work done")
	}
	if len(repo.published) != 1 || repo.published[0] != good.ID {
		t.Fatalf("only the good event should be published, got %v", repo.published)
	}
	if repo.failed[bad.ID] != "topic unavailable" {
		t.Fatalf("failed event must record the error, got %v", repo.failed)
	}
}

func TestProcessBatchEmptyIsIdle(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubPublisher{})
	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if processed {
		t.Fatal("empty fetch must report no work")
	}
}

func TestProcessBatchPropagatesFetchError(t *testing.T) {
	repo := &stubRepo{fetchErr: errors.New("connection reset")}
	svc := newTestService(t, repo, &stubPublisher{})
	if _, err := svc.processBatch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
}

func TestRunFailsWhenDependenciesUnreachable(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubPublisher{})
	svc.db = &stubDB{pingErr: errors.New("down")}

	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected readiness failure")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestNextBackoffDoublesAndCaps(t *testing.T) {
	base := 500 * time.Millisecond
	backoff := nextBackoff(base, base, maxBackoff)
	if backoff != time.Second {
		t.Fatalf("expected 1s, got %s", backoff)
	}
	for i := 0; i < 10; i++ {
		backoff = nextBackoff(backoff, base, maxBackoff)
	}
	if backoff != maxBackoff {
		t.Fatalf("backoff must cap at %s, got %s", maxBackoff, backoff)
	}
}
