package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency key states. The payment service itself does not
// deduplicate references; this guard sits in front of it at the HTTP
// layer, and the unique constraint on payments.reference backstops it.
const (
	stateInProgress = "IN_PROGRESS"
	stateCompleted  = "COMPLETED"

	// A crashed request must not wedge its reference forever.
	inProgressExpiry = 30 * time.Second
	completedExpiry  = 24 * time.Hour
)

// ErrReferenceInProgress signals a concurrent request with the same
// payment reference.
var ErrReferenceInProgress = errors.New("payment reference already in progress")

// IdempotencyStore tracks payment references through the
// in-progress/completed lifecycle using SETNX.
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) key(reference string) string {
	return fmt.Sprintf("payref:%s", reference)
}

// Begin marks a reference as in progress. It returns (true, nil) when
// the reference is a duplicate (already completed or currently in
// flight) and (false, nil) when the caller owns it and may proceed.
func (s *IdempotencyStore) Begin(ctx context.Context, reference string) (bool, error) {
	key := s.key(reference)

	state, err := s.client.Get(ctx, key).Result()
	if err == nil && state == stateCompleted {
		return true, nil
	}

	set, err := s.client.SetNX(ctx, key, stateInProgress, inProgressExpiry).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX error: %w", err)
	}
	if !set {
		return true, ErrReferenceInProgress
	}
	return false, nil
}

// Complete marks a reference as settled so later duplicates are
// rejected without reaching the payment service.
func (s *IdempotencyStore) Complete(ctx context.Context, reference string) error {
	return s.client.Set(ctx, s.key(reference), stateCompleted, completedExpiry).Err()
}

// Release frees a reference whose processing failed, so the caller may
// retry with the same reference.
func (s *IdempotencyStore) Release(ctx context.Context, reference string) error {
	return s.client.Del(ctx, s.key(reference)).Err()
}
