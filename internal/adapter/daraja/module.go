package daraja

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/config"
)

func newClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	return NewHTTPClient(cfg.GatewayBaseURL, Credentials{
		ConsumerKey:    cfg.GatewayConsumerKey,
		ConsumerSecret: cfg.GatewayConsumerSecret,
		ShortCode:      cfg.GatewayShortCode,
		Passkey:        cfg.GatewayPasskey,
		CallbackURL:    cfg.GatewayCallbackURL,
	}, logger)
}

// Module wires the payment gateway client into the fx graph.
var Module = fx.Provide(newClient)
