package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Шаблоны писем. Тексты совпадают с теми, что рассылались раньше,
// клиентские парсеры на них завязаны.
const verificationTemplate = `<html>
<head><title>Confirm your Land Market account</title></head>
<body>
<table>
<tr><td class="content-block">Hi {{.Username}},</td></tr>
<tr><td class="content-block">Please confirm your account by following the link below. The link is valid for 3 days.</td></tr>
<tr><td class="content-block"><a href="{{.SiteURL}}/verify?token={{.Token}}">{{.SiteURL}}/verify?token={{.Token}}</a></td></tr>
<tr><td class="content-block">If you did not sign up, ignore this email.</td></tr>
</table>
</body>
</html>`

const passwordResetTemplate = `<html>
<head><title>Land Market password reset</title></head>
<body>
<p>You requested a password reset. The link below is valid for 15 minutes.</p>
<p><a href="{{.Protocol}}://{{.Domain}}/reset_confirm?uidb64={{.UIDB64}}&token={{.Token}}">Reset your password</a></p>
<p>If you did not request this, ignore this email.</p>
</body>
</html>`

// TemplateManager рендерит html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	defaults := map[string]string{
		"confirm_email":  verificationTemplate,
		"password_reset": passwordResetTemplate,
	}
	for name, body := range defaults {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	tm.templates[name] = tpl
	return nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
