package apperrors

import "net/http"

/*
Предопределенные доменные ошибки. Сообщения совместимы с публичным
API и проверяются клиентами - менять текст осторожно.
*/

// --- Аккаунты и аутентификация ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"An account with that email already exists",
	http.StatusBadRequest,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"An account with that username already exists",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrAccountNotVerified = New(
	CodeUnauthorized,
	"auth",
	"User is not verified yet",
	http.StatusUnauthorized,
)

var ErrAccountNotFound = New(
	CodeNotFound,
	"auth",
	"User does not exist.",
	http.StatusNotFound,
)

var ErrAccountInactive = New(
	CodeForbidden,
	"auth",
	"User is not active.",
	http.StatusBadRequest,
)

var ErrInvalidSession = New(
	CodeInvalidToken,
	"auth",
	"Invalid session token",
	http.StatusUnauthorized,
)

// ErrRegistrationFailed скрывает детали сбоя после отката регистрации
var ErrRegistrationFailed = New(
	CodeExternalServiceError,
	"auth",
	"An error occurred during registration.",
	http.StatusInternalServerError,
)

// --- Верификация email ---

var ErrInvalidVerificationToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid activation link",
	http.StatusBadRequest,
)

var ErrAlreadyVerified = New(
	CodeInvalidOperation,
	"auth",
	"Your account is already active",
	http.StatusBadRequest,
)

var ErrVerificationExpired = New(
	CodeTokenExpired,
	"auth",
	"Activation link has expired, Sign up again",
	http.StatusBadRequest,
)

// --- Сброс пароля ---

var ErrInvalidResetLink = New(
	CodeInvalidToken,
	"auth",
	"Invalid password reset link.",
	http.StatusBadRequest,
)

var ErrMalformedResetToken = New(
	CodeValidationFailed,
	"auth",
	"Invalid password reset link.",
	http.StatusBadRequest,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Password link no longer valid.",
	http.StatusBadRequest,
)

var ErrResetLinkExpired = New(
	CodeTokenExpired,
	"auth",
	"Password reset link has expired. Request a new one.",
	http.StatusBadRequest,
)

var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"auth",
	"Passwords do not match.",
	http.StatusBadRequest,
)

// --- Профили ---

var ErrProfileAlreadyExists = New(
	CodeConflict,
	"profile",
	"Profile already exists",
	http.StatusBadRequest,
)

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"User doesn't have a profile",
	http.StatusNotFound,
)

var ErrNotProfileOwner = New(
	CodeForbidden,
	"profile",
	"User is not authorized",
	http.StatusForbidden,
)

var ErrNoProfileForSocial = New(
	CodeInvalidOperation,
	"profile",
	"User has no profile",
	http.StatusBadRequest,
)

var ErrSocialLinkNotFound = New(
	CodeNotFound,
	"profile",
	"Social link not found",
	http.StatusNotFound,
)

// --- Рейтинги ---

var ErrSelfRating = New(
	CodeInvalidOperation,
	"rating",
	"You cannot rate yourself.",
	http.StatusBadRequest,
)

var ErrBrokerCannotRate = New(
	CodeForbidden,
	"rating",
	"Only a buyer can review a broker",
	http.StatusBadRequest,
)

var ErrAlreadyRated = New(
	CodeConflict,
	"rating",
	"You have already rated this user.",
	http.StatusBadRequest,
)
