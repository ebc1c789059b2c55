package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
)

// GatewayStub simulates the push-payment provider.
type GatewayStub struct {
	PushFn func(context.Context, string, decimal.Decimal, string) (string, error)
	Err    error

	mu    sync.Mutex
	Calls []GatewayCall
	next  int
}

// GatewayCall records one RequestPush invocation.
type GatewayCall struct {
	Phone     string
	Amount    decimal.Decimal
	Reference string
}

// RequestPush records the call and returns a deterministic identifier.
func (s *GatewayStub) RequestPush(ctx context.Context, phone string, amount decimal.Decimal, reference string) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, GatewayCall{Phone: phone, Amount: amount, Reference: reference})
	s.next++
	n := s.next
	s.mu.Unlock()

	if s.PushFn != nil {
		return s.PushFn(ctx, phone, amount, reference)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return fmt.Sprintf("ws_CO_%d", n), nil
}

// SweeperStub mimics reaper interactions with the application facade.
type SweeperStub struct {
	Batches   [][]string
	ExpireFn  func(context.Context, time.Time, int) ([]string, error)
	DiscardFn func(context.Context, string) error

	mu        sync.Mutex
	calls     int
	Cutoffs   []time.Time
	Discarded []string
}

// Lock exposes the internal mutex for external synchronization.
func (s *SweeperStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *SweeperStub) Unlock() { s.mu.Unlock() }

// ExpirePayments returns batches from the configured queue.
func (s *SweeperStub) ExpirePayments(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, cutoff, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cutoffs = append(s.Cutoffs, cutoff)
	if s.calls < len(s.Batches) {
		batch := s.Batches[s.calls]
		s.calls++
		return batch, nil
	}
	return nil, nil
}

// DiscardSnapshot records snapshot cleanup requests.
func (s *SweeperStub) DiscardSnapshot(ctx context.Context, checkoutRequestID string) error {
	if s.DiscardFn != nil {
		return s.DiscardFn(ctx, checkoutRequestID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Discarded = append(s.Discarded, checkoutRequestID)
	return nil
}

// NotifierStub records notification invocations.
type NotifierStub struct {
	mu            sync.Mutex
	Confirmations []int64
	StatusChanges []StatusChange
}

// StatusChange records one status notification.
type StatusChange struct {
	OrderID  int64
	Previous model.OrderStatus
	Current  model.OrderStatus
}

func (s *NotifierStub) OrderConfirmation(ctx context.Context, order *model.Order, settings *model.StoreSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Confirmations = append(s.Confirmations, order.ID)
}

func (s *NotifierStub) OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusChanges = append(s.StatusChanges, StatusChange{
		OrderID:  order.ID,
		Previous: previous,
		Current:  order.Status,
	})
}
