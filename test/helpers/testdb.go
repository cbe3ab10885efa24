package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"kidhub_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailCounter atomic.Int64

// UniqueEmail возвращает уникальный email для теста.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.local", prefix, emailCounter.Add(1))
}

// RegisterAndLogin регистрирует пользователя через API и возвращает
// access-токен и его ID.
func RegisterAndLogin(t *testing.T, ts *TestServer, email, password string, role models.UserRole) (string, string) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"role":     string(role),
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration should succeed, got: "+bodyStr)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return resp.AccessToken, resp.User.ID
}

// CreateAdmin создает админа напрямую в базе и логинит через API.
// Публичной регистрации админов нет.
func CreateAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := UniqueEmail("admin")
	password := "adminpass123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
	}
	require.NoError(t, ts.DB.Create(admin).Error)

	body := map[string]interface{}{"email": email, "password": password}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, res.StatusCode, "admin login should succeed, got: "+bodyStr)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))

	return resp.AccessToken, admin
}

// CreateSchool создает школу напрямую в базе.
func CreateSchool(t *testing.T, db *gorm.DB, ownerID, city string, verified bool) *models.School {
	school := &models.School{
		Name:      "Test School",
		City:      city,
		Verified:  verified,
		CreatedBy: ownerID,
	}
	require.NoError(t, db.Create(school).Error)
	return school
}

// CreateActivity создает занятие напрямую в базе.
func CreateActivity(t *testing.T, db *gorm.DB, schoolID, createdBy string, ageMin, ageMax int, verified bool) *models.Activity {
	activity := &models.Activity{
		SchoolID:  &schoolID,
		Title:     "Test Activity",
		Category:  models.CategorySports,
		AgeMin:    ageMin,
		AgeMax:    ageMax,
		Active:    true,
		Verified:  verified,
		CreatedBy: createdBy,
		Source:    models.ActivitySourceSchool,
	}
	require.NoError(t, db.Create(activity).Error)
	return activity
}

// CreateNeighborhood создает район напрямую в базе.
func CreateNeighborhood(t *testing.T, db *gorm.DB, city, name string) *models.Neighborhood {
	n := &models.Neighborhood{
		City: city,
		Name: name,
		Lat:  42.6977,
		Lng:  23.3219,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}
