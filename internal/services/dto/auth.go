package dto

import "landmarket_backend/internal/models"

type RegisterRequest struct {
	Email    string             `json:"email" validate:"required,email"`
	Username string             `json:"username" validate:"required,min=3,max=178"`
	Password string             `json:"password" validate:"required,min=6,max=178"`
	Role     models.AccountRole `json:"role" validate:"omitempty,is-account-role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult - результат успешного входа
type LoginResult struct {
	Account *models.Account
	Token   string
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResetConfirmRequest struct {
	UIDB64    string `json:"uidb64" validate:"required"`
	Token     string `json:"token" validate:"required"`
	Password1 string `json:"password1" validate:"required,min=6,max=178"`
	Password2 string `json:"password2" validate:"required"`
}

// PasswordResetIssued - выпущенные реквизиты сброса пароля.
// Возвращаются в теле ответа так же, как делал старый API.
type PasswordResetIssued struct {
	UIDB64 string `json:"uidb64"`
	Token  string `json:"token"`
}
