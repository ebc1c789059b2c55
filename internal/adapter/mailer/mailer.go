package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// Notifier sends customer-facing notifications. Sends are best effort:
// implementations log failures but never propagate them into the order flow.
type Notifier interface {
	OrderConfirmation(ctx context.Context, order *model.Order, settings *model.StoreSettings)
	OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus)
}

// Sender delivers one composed message.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers messages over plain SMTP.
type SMTPSender struct {
	Addr     string
	From     string
	Username string
	Password string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if idx := strings.LastIndex(host, ":"); idx >= 0 {
			host = host[:idx]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}
	return smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg))
}

// LogSender writes messages to the application log instead of delivering
// them. Used when no SMTP server is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(to, subject, body string) error {
	s.Logger.Info("email (not delivered)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// EmailNotifier composes order emails, delivers them through a Sender and
// records every attempt in the email audit log.
type EmailNotifier struct {
	sender    Sender
	reports   repository.ReportRepository
	logger    *slog.Logger
	storeName string
}

// NewEmailNotifier builds a notifier around the given sender.
func NewEmailNotifier(sender Sender, reports repository.ReportRepository, logger *slog.Logger, storeName string) *EmailNotifier {
	return &EmailNotifier{
		sender:    sender,
		reports:   reports,
		logger:    logger,
		storeName: storeName,
	}
}

func (n *EmailNotifier) OrderConfirmation(ctx context.Context, order *model.Order, settings *model.StoreSettings) {
	if order.Email == "" {
		return
	}

	subject := fmt.Sprintf("%s order #%d confirmed", n.storeName, order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your order #%d.\n\n", order.CustomerName, order.ID)
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "  %dx %s (%s) - %s\n", line.Quantity, line.Name, line.Size, line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.Total().StringFixed(2))
	if settings != nil {
		pickup := settings.Pickup()
		fmt.Fprintf(&b, "\nPickup: %s on %s at %s\n%s\n", pickup.Location, pickup.Date, pickup.Time, pickup.Days)
		if settings.StorePhone != "" {
			fmt.Fprintf(&b, "\nQuestions? Call %s\n", settings.StorePhone)
		}
	}

	n.deliver(ctx, order.Email, subject, b.String())
}

func (n *EmailNotifier) OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) {
	if order.Email == "" || order.Status == previous {
		return
	}

	subject := fmt.Sprintf("%s order #%d is now %s", n.storeName, order.ID, order.Status)
	body := fmt.Sprintf("Hi %s,\n\nYour order #%d has moved from %s to %s.\n",
		order.CustomerName, order.ID, previous, order.Status)
	if order.Status == model.OrderStatusDispatched {
		body += "\nIt is on its way to " + order.DeliveryAddress + ".\n"
	}

	n.deliver(ctx, order.Email, subject, body)
}

func (n *EmailNotifier) deliver(ctx context.Context, to, subject, body string) {
	status := model.EmailStatusSent
	if err := n.sender.Send(to, subject, body); err != nil {
		status = model.EmailStatusFailed
		n.logger.Error("send email", slog.String("to", to), slog.String("subject", subject), slog.Any("error", err))
	}

	entry := &model.EmailLog{
		Recipient: to,
		Subject:   subject,
		Status:    status,
		SentAt:    time.Now(),
	}
	if err := n.reports.LogEmail(ctx, entry); err != nil {
		n.logger.Error("record email log", slog.Any("error", err))
	}
}
