package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/config"
	"github.com/kahenya/duka/internal/domain/repository"
)

func newNotifier(cfg *config.Config, reports repository.ReportRepository, logger *slog.Logger) Notifier {
	var sender Sender
	if cfg.SMTPAddr == "" || cfg.NotificationsDebug {
		sender = &LogSender{Logger: logger}
	} else {
		sender = &SMTPSender{
			Addr:     cfg.SMTPAddr,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}
	}
	return NewEmailNotifier(sender, reports, logger, cfg.StoreName)
}

// Module wires the notification sender into the fx graph.
var Module = fx.Provide(newNotifier)
