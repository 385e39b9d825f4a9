package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/nordeim/Elderly-Care-Center/internal/config"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client канал доставки напоминаний по email через SMTP
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(cfg config.SMTPConfig, log Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.FromEmail,
		log:    log,
	}
}

// Send отправляет письмо получателю.
// ctx проверяется до обращения к SMTP: gomail не умеет отменять
// установленное соединение.
func (c *Client) Send(ctx context.Context, to, name, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", c.from)
	message.SetAddressHeader("To", to, name)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(message); err != nil {
		c.log.Error("Mailer: failed to send email to %s: %v", to, err)
		return fmt.Errorf("mailer: failed to send email: %w", err)
	}

	c.log.Info("Mailer: email sent to %s", to)
	return nil
}
