package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NumberSource issues receipt numbers for completed checkouts.
type NumberSource interface {
	Next(ctx context.Context, outletID uuid.UUID, now time.Time) (string, error)
}

type sequenceCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	ReceiptSequenceKey(outletID, day string) string
}

// RedisNumberSource issues monotonic per-outlet per-day receipt numbers in
// the form YYYYMMDD-NNNN. The counter key expires two days after first use,
// well past the business day it numbers.
type RedisNumberSource struct {
	counter sequenceCounter
}

// NewRedisNumberSource builds a number source backed by the Redis counter.
func NewRedisNumberSource(counter sequenceCounter) *RedisNumberSource {
	return &RedisNumberSource{counter: counter}
}

func (s *RedisNumberSource) Next(ctx context.Context, outletID uuid.UUID, now time.Time) (string, error) {
	day := now.Format("20060102")
	key := s.counter.ReceiptSequenceKey(outletID.String(), day)
	seq, err := s.counter.IncrWithTTL(ctx, key, 48*time.Hour)
	if err != nil {
		return "", fmt.Errorf("incrementing receipt counter: %w", err)
	}
	return fmt.Sprintf("%s-%04d", day, seq), nil
}
