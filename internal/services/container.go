package services

import "landmarket_backend/internal/email"

// ServiceContainer собирает все сервисы приложения для передачи в слой
// хендлеров одной зависимостью
type ServiceContainer struct {
	AuthService    AuthService
	ProfileService ProfileService
	RatingService  RatingService
	EmailService   email.Provider
}
