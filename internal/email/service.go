package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/IsaacLanzoni/projeto-belezza/internal/config"
	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// Service sends transactional booking mails.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, apt *model.Appointment) error
	SendBookingCancellation(ctx context.Context, to string, apt *model.Appointment) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns a gomail-backed sender, or a no-op sender when SMTP
// is disabled in config (local development).
func NewService(cfg config.SMTPConfig) Service {
	if !cfg.Enabled {
		return &noopMailer{}
	}
	return &mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *mailer) SendBookingConfirmation(_ context.Context, to string, apt *model.Appointment) error {
	subject := "Agendamento recebido"
	body := fmt.Sprintf(
		"Seu agendamento para %s às %s foi recebido e aguarda confirmação do profissional.",
		apt.StartTime.Format(model.DateFormat),
		apt.StartTime.Format(model.ClockFormat),
	)
	return m.send(to, subject, body)
}

func (m *mailer) SendBookingCancellation(_ context.Context, to string, apt *model.Appointment) error {
	subject := "Agendamento cancelado"
	body := fmt.Sprintf(
		"Seu agendamento para %s às %s foi cancelado.",
		apt.StartTime.Format(model.DateFormat),
		apt.StartTime.Format(model.ClockFormat),
	)
	return m.send(to, subject, body)
}

func (m *mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

type noopMailer struct{}

func (*noopMailer) SendBookingConfirmation(context.Context, string, *model.Appointment) error {
	return nil
}

func (*noopMailer) SendBookingCancellation(context.Context, string, *model.Appointment) error {
	return nil
}
