package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"landmarket_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateAccount создает аккаунт напрямую в БД. Сырой пароль хешируется,
// аккаунт по умолчанию верифицирован и активен.
func CreateAccount(t *testing.T, db *gorm.DB, account *models.Account, rawPassword string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	account.PasswordHash = string(hashed)
	account.IsVerified = true
	account.IsActive = true
	if account.DateJoined.IsZero() {
		account.DateJoined = time.Now()
	}
	if account.Role == "" {
		account.Role = models.RoleBuyer
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account %s: %v", account.Email, err)
	}
}

// CreateAndLoginAccount создает аккаунт и логинит его через API
func CreateAndLoginAccount(t *testing.T, ts *TestServer, db *gorm.DB, username, email, password string, role models.AccountRole) (string, *models.Account) {
	account := &models.Account{
		Email:    email,
		Username: username,
		Role:     role,
	}
	CreateAccount(t, db, account, password)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, response: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, account
}

// CreateAndLoginBuyer создает покупателя с уникальным email
func CreateAndLoginBuyer(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.Account) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("buyer_%d@test.com", suffix)
	username := fmt.Sprintf("buyer_%d", suffix)
	return CreateAndLoginAccount(t, ts, db, username, email, "password123", models.RoleBuyer)
}

// CreateAndLoginBroker создает брокера с уникальным email
func CreateAndLoginBroker(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.Account) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("broker_%d@test.com", suffix)
	username := fmt.Sprintf("broker_%d", suffix)
	return CreateAndLoginAccount(t, ts, db, username, email, "password123", models.RoleBroker)
}

// CreateProfile создает профиль напрямую в БД
func CreateProfile(t *testing.T, db *gorm.DB, accountID, firstName, lastName string) *models.Profile {
	profile := &models.Profile{
		AccountID: accountID,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}
