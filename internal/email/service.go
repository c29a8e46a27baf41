package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/isabeauty/agenda-api/internal/model"
	"github.com/isabeauty/agenda-api/pkg/logger"
)

// Service notifies the operator about new bookings. The studio has a single
// operator, so there is one fixed recipient.
type Service interface {
	SendBookingAlert(ctx context.Context, apt *model.Appointment) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	to     string
	logger *logger.Logger
}

func NewSMTPService(cfg Config, l *logger.Logger) Service {
	if l == nil {
		l = logger.NewLogger(nil)
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
		logger: l,
	}
}

func (s *smtpService) SendBookingAlert(ctx context.Context, apt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Novo agendamento: %s (%s %s)", apt.ClientName, apt.Date, apt.Time))
	m.SetBody("text/plain", fmt.Sprintf(
		"Cliente: %s\nTelefone: %s\nServiço: %s\nData: %s %s\nValor total: R$ %.2f\n",
		apt.ClientName, apt.Phone, apt.Service, apt.Date, apt.Time, apt.TotalPrice,
	))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking alert: %w", err)
	}
	s.logger.Debug("booking alert sent", "appointment_id", apt.ID)
	return nil
}
