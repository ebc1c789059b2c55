package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/fx/fxtest"

	"github.com/kahenya/duka/internal/config"
	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
)

type fakeClient struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration

	getErr  error
	setErr  error
	delErr  error
	pingErr error
	closed  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		cmd.SetErr(c.getErr)
		return cmd
	}
	value, ok := c.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (c *fakeClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		cmd.SetErr(c.setErr)
		return cmd
	}
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	default:
		cmd.SetErr(errors.New("unsupported value type"))
		return cmd
	}
	c.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (c *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.delErr != nil {
		cmd.SetErr(c.delErr)
		return cmd
	}
	var removed int64
	for _, key := range keys {
		if _, ok := c.data[key]; ok {
			delete(c.data, key)
			delete(c.ttls, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func (c *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if c.pingErr != nil {
		cmd.SetErr(c.pingErr)
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func sampleCart() *model.Cart {
	return &model.Cart{Lines: []model.CartLine{{
		Key:       model.CartLineKey(1, "M"),
		ProductID: 1,
		Name:      "Classic Hoodie",
		Size:      "M",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(2500),
	}}}
}

func TestSessionStoreCart(t *testing.T) {
	client := newFakeClient()
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	cart, err := store.GetCart(ctx, "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}

	if err := store.SaveCart(ctx, "session-1", sampleCart()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.ttls["cart:session-1"] != TTLCart {
		t.Fatalf("expected cart ttl %v, got %v", TTLCart, client.ttls["cart:session-1"])
	}

	cart, err = store.GetCart(ctx, "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if err := store.ClearCart(ctx, "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.data["cart:session-1"]; ok {
		t.Fatal("expected cart removed")
	}

	client.data["cart:session-1"] = "{not json"
	if _, err := store.GetCart(ctx, "session-1"); err == nil {
		t.Fatal("expected decode error")
	}

	client.getErr = errors.New("down")
	if _, err := store.GetCart(ctx, "session-1"); err == nil {
		t.Fatal("expected error")
	}
	client.getErr = nil

	client.setErr = errors.New("down")
	if err := store.SaveCart(ctx, "session-1", sampleCart()); err == nil {
		t.Fatal("expected error")
	}
	client.setErr = nil

	client.delErr = errors.New("down")
	if err := store.ClearCart(ctx, "session-1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSessionStoreSnapshot(t *testing.T) {
	client := newFakeClient()
	store := NewSessionStore(client, 2*time.Minute)
	ctx := context.Background()

	snapshot := &model.CheckoutSnapshot{
		CustomerName:    "Atieno",
		PhoneNumber:     "254712345678",
		Email:           "atieno@example.com",
		DeliveryAddress: "Nairobi CBD",
		Lines:           sampleCart().Lines,
		Total:           decimal.NewFromInt(5000),
		SessionID:       "session-1",
	}

	if err := store.SaveSnapshot(ctx, "ws_CO_1", snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.ttls["checkout:ws_CO_1"] != 4*time.Minute {
		t.Fatalf("expected checkout ttl, got %v", client.ttls["checkout:ws_CO_1"])
	}

	loaded, err := store.GetSnapshot(ctx, "ws_CO_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.CustomerName != "Atieno" || !loaded.Total.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected snapshot: %+v", loaded)
	}

	if _, err := store.GetSnapshot(ctx, "ws_CO_gone"); !errors.Is(err, domainErrors.ErrSnapshotExpired) {
		t.Fatalf("expected snapshot expired, got %v", err)
	}

	if err := store.DeleteSnapshot(ctx, "ws_CO_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetSnapshot(ctx, "ws_CO_1"); !errors.Is(err, domainErrors.ErrSnapshotExpired) {
		t.Fatalf("expected snapshot expired after delete, got %v", err)
	}

	client.data["checkout:ws_CO_2"] = "{not json"
	if _, err := store.GetSnapshot(ctx, "ws_CO_2"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSessionStorePendingPayment(t *testing.T) {
	client := newFakeClient()
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	if _, err := store.GetPendingPayment(ctx, "session-1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Fatalf("expected no pending payment, got %v", err)
	}

	if err := store.SetPendingPayment(ctx, "session-1", "ws_CO_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := store.GetPendingPayment(ctx, "session-1")
	if err != nil || id != "ws_CO_1" {
		t.Fatalf("unexpected pending payment: %q err=%v", id, err)
	}

	if err := store.ClearPendingPayment(ctx, "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetPendingPayment(ctx, "session-1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Fatalf("expected no pending payment after clear, got %v", err)
	}
}

func TestSessionStoreDefaults(t *testing.T) {
	store := NewSessionStore(newFakeClient(), 0)
	if store.checkoutTTL != 2*DefaultTTLCheckout {
		t.Fatalf("expected default checkout ttl, got %v", store.checkoutTTL)
	}
}

// A payment that settles right at the end of the expiry window must still
// find its snapshot and reference, so both keys outlive the window itself.
func TestSessionStoreBridgeOutlivesPaymentWindow(t *testing.T) {
	window := 2 * time.Minute
	client := newFakeClient()
	store := NewSessionStore(client, window)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "ws_CO_1", &model.CheckoutSnapshot{SessionID: "session-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetPendingPayment(ctx, "session-1", "ws_CO_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ttl := client.ttls["checkout:ws_CO_1"]; ttl <= window {
		t.Fatalf("snapshot ttl %v does not outlive payment window %v", ttl, window)
	}
	if ttl := client.ttls["pending_payment:session-1"]; ttl <= window {
		t.Fatalf("pending payment ttl %v does not outlive payment window %v", ttl, window)
	}
}

func TestHealthCheck(t *testing.T) {
	client := newFakeClient()
	store := NewSessionStore(client, time.Minute)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.pingErr = errors.New("down")
	if err := store.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSessionStoreProvider(t *testing.T) {
	cfg := &config.Config{RedisAddr: "localhost:6379", PaymentExpiry: time.Minute}
	store, client := newSessionStore(storeParams{Config: cfg})
	if store == nil || client == nil {
		t.Fatal("expected store and client")
	}
	if store.checkoutTTL != 2*time.Minute {
		t.Fatalf("expected ttl derived from config, got %v", store.checkoutTTL)
	}
	_ = client.Close()
}

func TestRegisterLifecycle(t *testing.T) {
	client := newFakeClient()

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, client)

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !client.closed {
		t.Fatal("expected client closed on stop")
	}
}
