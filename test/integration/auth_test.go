package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"kidhub_backend/internal/models"
	"kidhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	email := helpers.UniqueEmail("parent")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
		"role":     "parent",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"access_token"`)
	assert.Contains(t, bodyStr, `"refresh_token"`)

	// Логин с верным паролем
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResp))

	// Профиль по токену
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", loginResp.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, email)
	assert.Contains(t, bodyStr, `"role":"parent"`)

	// Неверный пароль
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Без токена
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	email := helpers.UniqueEmail("dup")
	helpers.RegisterAndLogin(t, ts, email, "password123", models.UserRoleParent)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
		"role":     "school",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestAuth_AdminRoleRejected(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    helpers.UniqueEmail("sneaky"),
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestAuth_RefreshRotation(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    helpers.UniqueEmail("refresh"),
		"password": "password123",
		"role":     "parent",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var first struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &first))

	// Обмен refresh-токена
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": first.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var second struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &second))
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Старый токен отозван после ротации
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": first.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Logout отзывает действующий токен
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]interface{}{
		"refresh_token": second.RefreshToken,
	})
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": second.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
