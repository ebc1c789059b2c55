package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/config"
	"github.com/kahenya/duka/internal/domain/repository"
)

// Module wires the redis-backed session store.
var Module = fx.Options(
	fx.Provide(newSessionStore),
	fx.Provide(func(s *SessionStore) repository.SessionRepository { return s }),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newSessionStore(p storeParams) (*SessionStore, Client) {
	client := NewClient(p.Config.RedisAddr)
	return NewSessionStore(client, p.Config.PaymentExpiry), client
}

func registerLifecycle(lc fx.Lifecycle, client Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
