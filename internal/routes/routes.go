package routes

import (
	"landmarket_backend/internal/handlers"
	"landmarket_backend/internal/middleware"
	"landmarket_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP-маршруты API v1
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authSecret string,
	sessionRepo repositories.SessionRepository,
) {
	requireAuth := middleware.AuthMiddleware(authSecret, sessionRepo)

	api := ginRouter.Group("/api/v1")
	{
		// Аккаунты: регистрация и вход - публичные
		api.POST("/register", appHandlers.Auth.Register)
		api.POST("/login", appHandlers.Auth.Login)
		api.POST("/logout", requireAuth, appHandlers.Auth.Logout)
		api.POST("/request-new-email", appHandlers.Auth.RequestNewLink)
		api.POST("/verify", appHandlers.Auth.Verify)
		api.POST("/reset_password", appHandlers.Auth.RequestPasswordReset)
		api.POST("/reset_confirm", appHandlers.Auth.ConfirmPasswordReset)

		// Профили: чтение доступно любому вошедшему, запись - только владелец
		api.GET("/profile/:id", requireAuth, appHandlers.Profile.GetProfile)
		api.POST("/profile/:id", requireAuth, appHandlers.Profile.CreateProfile)
		api.PUT("/profile/:id", requireAuth, appHandlers.Profile.UpdateProfile)
		api.DELETE("/profile/:id", requireAuth, appHandlers.Profile.DeleteProfile)

		// Социальные ссылки профиля
		api.GET("/social_account/:id", requireAuth, appHandlers.Profile.ListSocialLinks)
		api.POST("/social_account/:id", requireAuth, appHandlers.Profile.AddSocialLink)
		api.PUT("/social_account/:id", requireAuth, appHandlers.Profile.UpdateSocialLink)
		api.DELETE("/social_account/:id", requireAuth, appHandlers.Profile.DeleteSocialLink)

		// Рейтинги
		api.GET("/ratings/:id", requireAuth, appHandlers.Rating.ListRatings)
		api.POST("/ratings/:id", requireAuth, appHandlers.Rating.CreateRating)
	}
}
