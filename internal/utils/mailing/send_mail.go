package mailing

import (
	"blood-portal/internal/utils"
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound mail transport. Callers treat it as best effort.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) (string, error)
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

type smtpMailer struct {
	config MailConfig
	send   func(d *gomail.Dialer, m *gomail.Message) error
}

func NewSMTPMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config, send: dialAndSend}
}

func dialAndSend(d *gomail.Dialer, m *gomail.Message) error {
	return d.DialAndSend(m)
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return "", fmt.Errorf("invalid SMTP port %q: %w", m.config.SMTPPort, err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.config.SMTPHost)

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetHeader("Message-ID", messageID)
	if textBody != "" {
		mailer.SetBody("text/plain", textBody)
		mailer.AddAlternative("text/html", htmlBody)
	} else {
		mailer.SetBody("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	// gomail only bounds the dial, so the SMTP exchange is raced against ctx.
	// An abandoned exchange finishes or fails on its own.
	done := make(chan error, 1)
	go func() {
		done <- m.send(dialer, mailer)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", err
		}
		return messageID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
