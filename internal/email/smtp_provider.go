package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPProvider реализует Provider для SMTP
type SMTPProvider struct {
	config *SMTPConfig
	auth   smtp.Auth
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	return &SMTPProvider{
		config: config,
		auth:   auth,
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if email.From == "" {
		email.From = p.config.From
	}

	message := p.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", p.config.Host, p.config.Port)

	if p.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: p.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to dial TLS: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, p.config.Host)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		defer client.Close()

		return p.sendWithClient(client, email, message)
	}

	return smtp.SendMail(addr, p.auth, email.From, email.To, message)
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}

	return nil
}

// Close закрывает соединение (для SMTP обычно не требуется)
func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) []byte {
	builder := &strings.Builder{}

	builder.WriteString(fmt.Sprintf("From: %s\r\n", email.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ",")))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	builder.WriteString(email.Body)

	return []byte(builder.String())
}

// sendWithClient отправляет сообщение используя существующий SMTP клиент
func (p *SMTPProvider) sendWithClient(client *smtp.Client, email *Email, message []byte) error {
	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(email.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range email.To {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return nil
}
