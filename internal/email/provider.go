package email

// TemplateData - данные для подстановки в шаблон письма
type TemplateData map[string]interface{}

// Email - одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider определяет интерфейс для отправки email.
// Сбой отправки для вызывающего кода фатален: регистрация
// откатывается, если письмо не ушло.
type Provider interface {
	// Send отправляет готовое письмо
	Send(email *Email) error

	// SendVerification отправляет ссылку подтверждения аккаунта
	SendVerification(to, siteURL, username, token string) error

	// SendPasswordReset отправляет ссылку сброса пароля
	SendPasswordReset(to, domain, uidb64, token string) error

	// Close закрывает соединение с провайдером
	Close() error
}
