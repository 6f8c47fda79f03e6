package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmarket_backend/test/helpers"
)

func TestAuthFlow_RegisterVerifyLogin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	// Регистрация
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/register", "", map[string]interface{}{
		"email":    "newbuyer@test.com",
		"username": "newbuyer",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var registerResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &registerResp))
	assert.True(t, registerResp.Success)
	require.NotEmpty(t, registerResp.Token)

	// До верификации вход закрыт
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", map[string]interface{}{
		"email":    "newbuyer@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	// Верификация по токену из письма
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/verify", "", map[string]interface{}{
		"token": registerResp.Token,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Повторный переход по той же ссылке
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/verify", "", map[string]interface{}{
		"token": registerResp.Token,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Your account is already active")

	// Теперь вход работает
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", map[string]interface{}{
		"email":    "newbuyer@test.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResp))
	assert.NotEmpty(t, loginResp.Token)
}

func TestAuthFlow_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	payload := map[string]interface{}{
		"email":    "dup@test.com",
		"username": "dupuser",
		"password": "password123",
	}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/register", "", payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	payload["username"] = "otheruser"
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "email already exists")
}

func TestAuthFlow_LogoutRevokesToken(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginBuyer(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	// Тот же токен больше не принимается
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuthFlow_PasswordReset(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, account := helpers.CreateAndLoginBuyer(t, ts, ts.DB)

	// Неизвестный email раскрывается явно
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/reset_password", "", map[string]interface{}{
		"email": "nobody@test.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "There is no user with that email.")

	// Выпуск ссылки сброса
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/reset_password", "", map[string]interface{}{
		"email": account.Email,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resetResp struct {
		UIDB64 string `json:"uidb64"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resetResp))
	require.NotEmpty(t, resetResp.Token)

	// Несовпадающие пароли отклоняются до записи
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/reset_confirm", "", map[string]interface{}{
		"uidb64":    resetResp.UIDB64,
		"token":     resetResp.Token,
		"password1": "newpassword",
		"password2": "different1",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Passwords do not match.")

	// Успешный сброс
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/reset_confirm", "", map[string]interface{}{
		"uidb64":    resetResp.UIDB64,
		"token":     resetResp.Token,
		"password1": "newpassword",
		"password2": "newpassword",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Старый пароль не работает, новый работает
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", map[string]interface{}{
		"email":    account.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/login", "", map[string]interface{}{
		"email":    account.Email,
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
