package email

import "kidhub_backend/internal/logger"

// NoopProvider логирует письма вместо отправки. Используется когда
// email.enabled=false (локальная разработка и тесты).
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Debug("email sending disabled, dropping message",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }

func (p *NoopProvider) Close() error { return nil }
