package workers

import (
	"context"
	"time"

	"landmarket_backend/internal/logger"
	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

// CleanupWorker подчищает протухшие данные в фоне: истекшие сессии и
// аккаунты, не подтвердившие email за отведенное окно. Аккаунты
// удаляются и при попытке верификации по просроченной ссылке - воркер
// лишь добирает тех, кто по ссылке так и не пришел.
type CleanupWorker struct {
	db                 *gorm.DB
	verificationWindow time.Duration
}

func NewCleanupWorker(db *gorm.DB, verificationWindow time.Duration) *CleanupWorker {
	return &CleanupWorker{
		db:                 db,
		verificationWindow: verificationWindow,
	}
}

// Start запускает фоновую чистку
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	w.sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CleanupWorker) sweep() {
	now := time.Now()

	result := w.db.Where("expires_at < ?", now).Delete(&models.Session{})
	if result.Error != nil {
		logger.Error("failed to purge expired sessions", "error", result.Error)
	} else if result.RowsAffected > 0 {
		logger.Info("purged expired sessions", "count", result.RowsAffected)
	}

	cutoff := now.Add(-w.verificationWindow)
	result = w.db.Where("is_verified = ? AND date_joined < ?", false, cutoff).Delete(&models.Account{})
	if result.Error != nil {
		logger.Error("failed to purge unverified accounts", "error", result.Error)
	} else if result.RowsAffected > 0 {
		logger.Info("purged unverified accounts", "count", result.RowsAffected)
	}
}
