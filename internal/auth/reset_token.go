package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"landmarket_backend/internal/models"
	"landmarket_backend/pkg/apperrors"
)

// ResetTokenTTL - окно действия ссылки сброса пароля
const ResetTokenTTL = 15 * time.Minute

// ResetSigner выпускает и проверяет токены сброса пароля вида
// "<подпись>:<unix-timestamp>". Подпись привязана к состоянию аккаунта
// (id, хеш пароля, дата регистрации), поэтому смена пароля делает
// все выданные токены недействительными. Сама подпись не истекает -
// срок проверяется отдельно по приложенному открытому timestamp,
// которому мы доверяем только после успешной проверки подписи.
type ResetSigner struct {
	secret []byte
}

func NewResetSigner(secret string) *ResetSigner {
	return &ResetSigner{secret: []byte(secret)}
}

// MakeToken выпускает токен сброса для аккаунта на момент now
func (s *ResetSigner) MakeToken(account *models.Account, now time.Time) string {
	return s.sign(account) + ":" + strconv.FormatInt(now.Unix(), 10)
}

// Validate проверяет форму токена, подпись и окно действия - именно
// в этом порядке, чтобы ответы различали MalformedToken / InvalidToken /
// Expired так же, как публичный API.
func (s *ResetSigner) Validate(account *models.Account, token string, now time.Time) error {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return apperrors.ErrMalformedResetToken
	}

	signature, timestampStr := parts[0], parts[1]

	if !hmac.Equal([]byte(signature), []byte(s.sign(account))) {
		return apperrors.ErrInvalidResetToken
	}

	issuedAt, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	if now.Sub(time.Unix(issuedAt, 0)) > ResetTokenTTL {
		return apperrors.ErrResetLinkExpired
	}

	return nil
}

func (s *ResetSigner) sign(account *models.Account) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s|%d", account.ID, account.PasswordHash, account.DateJoined.Unix())
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// EncodeUID кодирует id аккаунта для использования в ссылке (uidb64)
func EncodeUID(accountID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(accountID))
}

// DecodeUID декодирует uidb64 обратно в id аккаунта
func DecodeUID(uidb64 string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		// Клиенты исторически присылают и вариант с паддингом
		raw, err = base64.URLEncoding.DecodeString(uidb64)
		if err != nil {
			return "", err
		}
	}
	return string(raw), nil
}
