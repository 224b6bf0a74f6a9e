package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubCounter struct {
	values map[string]int64
	err    error
	ttls   map[string]time.Duration
}

func (s *stubCounter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.values == nil {
		s.values = map[string]int64{}
	}
	if s.ttls == nil {
		s.ttls = map[string]time.Duration{}
	}
	s.values[key]++
	s.ttls[key] = ttl
	return s.values[key], nil
}

func (s *stubCounter) ReceiptSequenceKey(outletID, day string) string {
	return "receipt_seq:" + outletID + ":" + day
}

func TestReceiptNumberFormat(t *testing.T) {
	counter := &stubCounter{}
	source := NewRedisNumberSource(counter)
	outletID := uuid.New()
	day := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	number, err := source.Next(context.Background(), outletID, day)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if number != "20260831-0001" {
		t.Fatalf("unexpected receipt number %q", number)
	}

	number, err = source.Next(context.Background(), outletID, day)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if number != "20260831-0002" {
		t.Fatalf("expected sequence to advance, got %q", number)
	}
}

func TestReceiptNumberSequenceIsPerOutletPerDay(t *testing.T) {
	counter := &stubCounter{}
	source := NewRedisNumberSource(counter)
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	first, _ := source.Next(context.Background(), uuid.New(), day)
	second, _ := source.Next(context.Background(), uuid.New(), day)
	if first != "20260831-0001" || second != "20260831-0001" {
		t.Fatalf("outlets must not share counters: %q %q", first, second)
	}

	outletID := uuid.New()
	if n, _ := source.Next(context.Background(), outletID, day); n != "20260831-0001" {
		t.Fatalf("unexpected number %q", n)
	}
	if n, _ := source.Next(context.Background(), outletID, nextDay); n != "20260901-0001" {
		t.Fatalf("counter must reset each day, got %q", n)
	}
}

func TestReceiptNumberCounterFailure(t *testing.T) {
	source := NewRedisNumberSource(&stubCounter{err: errors.New("redis down")})
	if _, err := source.Next(context.Background(), uuid.New(), time.Now()); err == nil {
		t.Fatal("expected error from counter failure")
	}
}
