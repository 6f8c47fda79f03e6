package email

import "landmarket_backend/internal/logger"

// LogProvider пишет письма в лог вместо отправки. Для локальной
// разработки и окружений без SMTP.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email (not sent)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendVerification(to, siteURL, username, token string) error {
	logger.Info("verification email (not sent)", "to", to, "site_url", siteURL, "token", token)
	return nil
}

func (p *LogProvider) SendPasswordReset(to, domain, uidb64, token string) error {
	logger.Info("password reset email (not sent)", "to", to, "domain", domain, "uidb64", uidb64)
	return nil
}

func (p *LogProvider) Close() error { return nil }
