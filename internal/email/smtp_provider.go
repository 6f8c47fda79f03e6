package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - настройки SMTP провайдера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config    SMTPConfig
	dialer    *gomail.Dialer
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	return &SMTPProvider{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		templates: tm,
	}, nil
}

// Send отправляет письмо
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	if p.config.FromName != "" {
		m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	} else {
		m.SetHeader("From", p.config.FromEmail)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerification отправляет ссылку подтверждения аккаунта
func (p *SMTPProvider) SendVerification(to, siteURL, username, token string) error {
	html, err := p.templates.Render("confirm_email", TemplateData{
		"Username": username,
		"SiteURL":  siteURL,
		"Token":    token,
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Confirm your Land Market account",
		HTMLBody: html,
	})
}

// SendPasswordReset отправляет ссылку сброса пароля
func (p *SMTPProvider) SendPasswordReset(to, domain, uidb64, token string) error {
	html, err := p.templates.Render("password_reset", TemplateData{
		"Protocol": "https",
		"Domain":   domain,
		"UIDB64":   uidb64,
		"Token":    token,
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Land Market password reset",
		HTMLBody: html,
	})
}

// Close закрывает соединение (для SMTP не требуется)
func (p *SMTPProvider) Close() error {
	return nil
}
