package email

import (
	"apna_room_server/internal/config"
	"apna_room_server/pkg/errorx"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail through a gomail dialer.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from config. When no SMTP host is
// configured it falls back to NoopSender so the rest of the app does
// not have to care.
func NewSMTPSender(conf *config.EmailConfig) Sender {
	if conf.Host == "" {
		zap.L().Warn("smtp host not configured, outbound mail disabled")
		return NoopSender{}
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:   conf.From,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	subject, body, err := render(msg)
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeEmailError, "render email %s", msg.Template)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errorx.Wrapf(err, errorx.CodeEmailError, "send email to %s", msg.To)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)
