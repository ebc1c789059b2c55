package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
)

// Client is the subset of go-redis the session store needs; tests provide a
// stub implementation.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// NewClient builds a go-redis client for the given address.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// SessionStore keeps per-visitor transient state in redis: carts, checkout
// snapshots, and pending payment references, all with expirations.
type SessionStore struct {
	client      Client
	checkoutTTL time.Duration
}

// NewSessionStore constructs the store. paymentWindow is how long a payment
// attempt may stay pending; snapshots and payment references are kept twice
// as long so a charge settling at the edge of the window can still be
// reconciled into an order.
func NewSessionStore(client Client, paymentWindow time.Duration) *SessionStore {
	if paymentWindow <= 0 {
		paymentWindow = DefaultTTLCheckout
	}
	return &SessionStore{client: client, checkoutTTL: 2 * paymentWindow}
}

func (s *SessionStore) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(keyCart, sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Cart{}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var cart model.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *SessionStore) SaveCart(ctx context.Context, sessionID string, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, fmt.Sprintf(keyCart, sessionID), payload, TTLCart).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *SessionStore) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, fmt.Sprintf(keyCart, sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *SessionStore) SaveSnapshot(ctx context.Context, checkoutRequestID string, snapshot *model.CheckoutSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	key := fmt.Sprintf(keyCheckoutSnapshot, checkoutRequestID)
	if err := s.client.Set(ctx, key, payload, s.checkoutTTL).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SessionStore) GetSnapshot(ctx context.Context, checkoutRequestID string) (*model.CheckoutSnapshot, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(keyCheckoutSnapshot, checkoutRequestID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrSnapshotExpired
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snapshot model.CheckoutSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *SessionStore) DeleteSnapshot(ctx context.Context, checkoutRequestID string) error {
	if err := s.client.Del(ctx, fmt.Sprintf(keyCheckoutSnapshot, checkoutRequestID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *SessionStore) SetPendingPayment(ctx context.Context, sessionID, checkoutRequestID string) error {
	key := fmt.Sprintf(keyPendingPayment, sessionID)
	if err := s.client.Set(ctx, key, checkoutRequestID, s.checkoutTTL).Err(); err != nil {
		return fmt.Errorf("set pending payment: %w", err)
	}
	return nil
}

func (s *SessionStore) GetPendingPayment(ctx context.Context, sessionID string) (string, error) {
	id, err := s.client.Get(ctx, fmt.Sprintf(keyPendingPayment, sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domainErrors.ErrNoPendingPayment
		}
		return "", fmt.Errorf("get pending payment: %w", err)
	}
	return id, nil
}

func (s *SessionStore) ClearPendingPayment(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, fmt.Sprintf(keyPendingPayment, sessionID)).Err(); err != nil {
		return fmt.Errorf("clear pending payment: %w", err)
	}
	return nil
}

// HealthCheck verifies redis connectivity.
func (s *SessionStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
