package handlers

import (
	"net/http"

	"landmarket_backend/internal/services"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/internal/validator"
	"landmarket_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(v *validator.Validator, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(v),
		authService: authService,
	}
}

// requestOrigin возвращает адрес фронтенда, с которого пришел запрос.
// Ссылки в письмах собираются от него, а не от адреса API.
func requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("X-Requested-From"); origin != "" {
		return origin
	}
	return c.Request.Host
}

// Register - POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	account, token, err := h.authService.Register(db, &req, requestOrigin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification link sent to " + account.Email,
		"token":   token,
		"data":    account,
	})
}

// RequestNewLink - POST /request-new-email
func (h *AuthHandler) RequestNewLink(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	token, err := h.authService.RequestNewLink(db, req.Email, requestOrigin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification link sent to " + req.Email,
		"token":   token,
	})
}

// Verify - POST /verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	account, err := h.authService.Verify(db, req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your email confirmation. Now you can login your account.",
		"data":    account,
	})
}

// Login - POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	result, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.Account,
	})
}

// Logout - POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenVal, exists := c.Get("sessionToken")
	token, _ := tokenVal.(string)
	if !exists || token == "" {
		h.HandleServiceError(c, apperrors.ErrInvalidSession)
		return
	}

	db := h.GetDB(c)
	if err := h.authService.Logout(db, token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestPasswordReset - POST /reset_password
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	issued, found, err := h.authService.RequestPasswordReset(db, req.Email, requestOrigin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Существование аккаунта здесь раскрывается сознательно: старый
	// API отвечал так же, и клиенты на это завязаны
	if !found {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "There is no user with that email.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset link sent to " + req.Email,
		"uidb64":  issued.UIDB64,
		"token":   issued.Token,
	})
}

// ConfirmPasswordReset - POST /reset_confirm
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ResetConfirmRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.authService.ConfirmPasswordReset(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset.",
	})
}
