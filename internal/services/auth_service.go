package services

import (
	"time"

	"landmarket_backend/internal/auth"
	"landmarket_backend/internal/email"
	"landmarket_backend/internal/logger"
	"landmarket_backend/internal/models"
	"landmarket_backend/internal/repositories"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationWindow - окно, в течение которого аккаунт обязан
// подтвердить email. По истечении аккаунт удаляется.
const VerificationWindow = 3 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest, siteURL string) (*models.Account, string, error)
	RequestNewLink(db *gorm.DB, emailAddr, siteURL string) (string, error)
	Verify(db *gorm.DB, token string) (*models.Account, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error)
	Logout(db *gorm.DB, sessionToken string) error
	RequestPasswordReset(db *gorm.DB, emailAddr, domain string) (*dto.PasswordResetIssued, bool, error)
	ConfirmPasswordReset(db *gorm.DB, req *dto.ResetConfirmRequest) error
}

type AuthServiceImpl struct {
	accountRepo   repositories.AccountRepository
	sessionRepo   repositories.SessionRepository
	emailProvider email.Provider
	resetSigner   *auth.ResetSigner
	authSecret    string
	sessionTTL    time.Duration
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
	emailProvider email.Provider,
	authSecret string,
	sessionTTL time.Duration,
) AuthService {
	return &AuthServiceImpl{
		accountRepo:   accountRepo,
		sessionRepo:   sessionRepo,
		emailProvider: emailProvider,
		resetSigner:   auth.NewResetSigner(authSecret),
		authSecret:    authSecret,
		sessionTTL:    sessionTTL,
	}
}

// Register создает неподтвержденный аккаунт и синхронно отправляет
// письмо верификации. Если письмо отправить не удалось, аккаунт
// удаляется (компенсирующее действие) - клиент не видит частичного
// состояния.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest, siteURL string) (*models.Account, string, error) {
	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !models.ValidRole(role) {
		return nil, "", apperrors.ValidationError(map[string]string{"role": "invalid account role"})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	verificationToken := uuid.NewString()

	account := &models.Account{
		Email:             req.Email,
		Username:          req.Username,
		PasswordHash:      passwordHash,
		IsVerified:        false,
		IsActive:          true,
		DateJoined:        time.Now(),
		VerificationToken: verificationToken,
		Role:              role,
	}

	if err := s.accountRepo.Create(db, account); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailTaken):
			return nil, "", apperrors.ErrEmailAlreadyExists
		case apperrors.Is(err, repositories.ErrUsernameTaken):
			return nil, "", apperrors.ErrUsernameAlreadyExists
		}
		return nil, "", apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendVerification(account.Email, siteURL, account.Username, verificationToken); err != nil {
		// Откат: письмо не ушло - регистрации не было
		if delErr := s.accountRepo.Delete(db, account.ID); delErr != nil {
			logger.Error("failed to roll back account after email failure",
				"account_id", account.ID, "error", delErr)
		}
		logger.Error("verification email delivery failed", "email", account.Email, "error", err)
		return nil, "", apperrors.ErrRegistrationFailed
	}

	return account, verificationToken, nil
}

// RequestNewLink перевыпускает токен верификации и шлет письмо заново.
// Старый токен при этом перестает действовать.
func (s *AuthServiceImpl) RequestNewLink(db *gorm.DB, emailAddr, siteURL string) (string, error) {
	account, err := s.accountRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return "", apperrors.ErrAccountNotFound
		}
		return "", apperrors.InternalError(err)
	}

	if !account.IsActive {
		return "", apperrors.ErrAccountInactive
	}

	token := uuid.NewString()
	if err := s.accountRepo.UpdateVerificationToken(db, account.ID, token); err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendVerification(account.Email, siteURL, account.Username, token); err != nil {
		logger.Error("verification email delivery failed", "email", account.Email, "error", err)
		return "", apperrors.ErrRegistrationFailed
	}

	return token, nil
}

// Verify подтверждает аккаунт по токену. Если окно верификации
// истекло, аккаунт удаляется и пользователю придется
// зарегистрироваться заново.
func (s *AuthServiceImpl) Verify(db *gorm.DB, token string) (*models.Account, error) {
	account, err := s.accountRepo.FindByVerificationToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidVerificationToken
		}
		return nil, apperrors.InternalError(err)
	}

	if account.IsVerified {
		return nil, apperrors.ErrAlreadyVerified
	}

	if time.Now().After(account.DateJoined.Add(VerificationWindow)) {
		if err := s.accountRepo.Delete(db, account.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrVerificationExpired
	}

	if err := s.accountRepo.MarkVerified(db, account.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	account.IsVerified = true
	return account, nil
}

// Login проверяет учетные данные и выдает session-токен. Если у
// аккаунта уже есть живая сессия, переиспользуем ее токен вместо
// выпуска нового.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error) {
	account, err := s.accountRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Деактивированный аккаунт неотличим от неверного пароля
	if !account.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !account.IsVerified {
		return nil, apperrors.ErrAccountNotVerified
	}

	if existing, err := s.sessionRepo.FindActiveByAccount(db, account.ID, time.Now()); err == nil {
		return &dto.LoginResult{Account: account, Token: existing.Token}, nil
	}

	token, expiresAt, err := auth.GenerateSessionToken(account.ID, string(account.Role), s.authSecret, s.sessionTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		AccountID: account.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResult{Account: account, Token: token}, nil
}

// Logout гасит сессию. Повторный вызов с тем же токеном - это
// InvalidSession, а не сбой.
func (s *AuthServiceImpl) Logout(db *gorm.DB, sessionToken string) error {
	if err := s.sessionRepo.DeleteByToken(db, sessionToken); err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return apperrors.ErrInvalidSession
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset выпускает подписанный токен сброса. Для
// неизвестного email возвращает found=false без ошибки - ответ
// формирует хендлер (явное "There is no user with that email.",
// поведение сохранено намеренно).
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr, domain string) (*dto.PasswordResetIssued, bool, error) {
	account, err := s.accountRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, false, nil
		}
		return nil, false, apperrors.InternalError(err)
	}

	token := s.resetSigner.MakeToken(account, time.Now())
	uidb64 := auth.EncodeUID(account.ID)

	if err := s.emailProvider.SendPasswordReset(account.Email, domain, uidb64, token); err != nil {
		logger.Error("password reset email delivery failed", "email", account.Email, "error", err)
		return nil, true, apperrors.InternalError(err)
	}

	return &dto.PasswordResetIssued{UIDB64: uidb64, Token: token}, true, nil
}

// ConfirmPasswordReset проверяет ссылку сброса и ставит новый пароль.
// Порядок проверок фиксирован: ссылка -> форма токена -> подпись ->
// срок -> совпадение паролей; до записи в БД дело доходит только
// после всех проверок.
func (s *AuthServiceImpl) ConfirmPasswordReset(db *gorm.DB, req *dto.ResetConfirmRequest) error {
	accountID, err := auth.DecodeUID(req.UIDB64)
	if err != nil {
		return apperrors.ErrInvalidResetLink
	}

	account, err := s.accountRepo.FindByID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrInvalidResetLink
		}
		return apperrors.InternalError(err)
	}

	if err := s.resetSigner.Validate(account, req.Token, time.Now()); err != nil {
		return err
	}

	if req.Password1 != req.Password2 {
		return apperrors.ErrPasswordMismatch
	}

	passwordHash, err := auth.HashPassword(req.Password1)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.accountRepo.UpdatePassword(db, account.ID, passwordHash); err != nil {
		return apperrors.InternalError(err)
	}

	// Смена пароля гасит все выданные сессии
	if err := s.sessionRepo.DeleteByAccountID(db, account.ID); err != nil {
		logger.Warn("failed to revoke sessions after password reset",
			"account_id", account.ID, "error", err)
	}

	return nil
}
