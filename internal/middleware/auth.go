package middleware

import (
	"time"

	"landmarket_backend/internal/auth"
	"landmarket_backend/internal/models"
	"landmarket_backend/internal/repositories"
	"landmarket_backend/pkg/apperrors"
	"landmarket_backend/pkg/contextkeys"

	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware проверяет Bearer session-токен. Подписи JWT недостаточно:
// токен обязан иметь живую строку сессии в БД, иначе logout был бы
// неотзываемым.
func AuthMiddleware(secret string, sessions repositories.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrInvalidSession)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseSessionToken(tokenStr, secret)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidSession)
			c.Abort()
			return
		}

		db, ok := c.Value(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			c.Abort()
			return
		}

		session, err := sessions.FindByToken(db, tokenStr)
		if err != nil || time.Now().After(session.ExpiresAt) {
			apperrors.HandleError(c, apperrors.ErrInvalidSession)
			c.Abort()
			return
		}

		c.Set("userID", claims.AccountID)
		c.Set("role", claims.Role)
		c.Set("sessionToken", tokenStr)
		c.Next()
	}
}

// RequireRoles пускает дальше только перечисленные роли
func RequireRoles(roles ...models.AccountRole) gin.HandlerFunc {
	roleSet := make(map[models.AccountRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			c.Abort()
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: invalid role type"))
			c.Abort()
			return
		}

		if !roleSet[models.AccountRole(roleStr)] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
