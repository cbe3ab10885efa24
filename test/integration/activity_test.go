package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"kidhub_backend/internal/models"
	"kidhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_CreateRequiresSchool(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	token, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)

	body := map[string]interface{}{
		"title":    "Piano lessons",
		"category": "music",
		"age_min":  6,
		"age_max":  12,
	}

	// Без школы занятие не создать
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/activities", token, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/activities", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"verified":false`)
	assert.Contains(t, bodyStr, `"source":"school"`)

	// Невалидный возрастной интервал
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/activities", token, map[string]interface{}{
		"title":    "Broken range",
		"category": "music",
		"age_min":  10,
		"age_max":  6,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "VALIDATION_FAILED")
}

func TestActivity_ListFilters(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	_, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)
	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)

	football := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, true)
	require.NoError(t, ts.DB.Model(football).Update("category", models.CategorySports).Error)
	piano := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 10, 16, true)
	require.NoError(t, ts.DB.Model(piano).Update("category", models.CategoryMusic).Error)
	unverified := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, false)

	// Пустой фильтр возвращает все активные, включая неверифицированные
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/activities", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, football.ID)
	assert.Contains(t, bodyStr, piano.ID)
	assert.Contains(t, bodyStr, unverified.ID)

	// verified_only сужает до верифицированных
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?verified_only=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, football.ID)
	assert.Contains(t, bodyStr, piano.ID)
	assert.NotContains(t, bodyStr, unverified.ID)

	// Категория
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?category=music", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, piano.ID)
	assert.NotContains(t, bodyStr, football.ID)

	// Возраст - пересечение интервалов: [11,13] пересекает и [6,12], и [10,16]
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?age_min=11&age_max=13", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, football.ID)
	assert.Contains(t, bodyStr, piano.ID)

	// [13,15] не пересекает [6,12]
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?age_min=13&age_max=15", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, football.ID)
	assert.Contains(t, bodyStr, piano.ID)

	// Город (регистронезависимо)
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?city=SOFIA", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, football.ID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?city=Plovdiv", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, football.ID)

	// age_min > age_max - ошибка запроса
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?age_min=15&age_max=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "VALIDATION_FAILED")
}

func TestActivity_ParentSubmissionGoesThroughModeration(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	parentToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("parent"), "password123", models.UserRoleParent)
	adminToken, _ := helpers.CreateAdmin(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/activities/submissions", parentToken, map[string]interface{}{
		"title":    "Chess club around the corner",
		"category": "science",
		"age_min":  7,
		"age_max":  14,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"source":"parent"`)
	assert.Contains(t, bodyStr, `"verified":false`)

	var submitted models.Activity
	require.NoError(t, ts.DB.Where("title = ?", "Chess club around the corner").First(&submitted).Error)

	// В витрине верифицированных заявки нет
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?verified_only=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, submitted.ID)

	// Но есть в очереди модерации
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/activities/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, submitted.ID)

	// После верификации появляется в витрине
	res, bodyStr = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/activities/%s/verify", submitted.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/activities?verified_only=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, submitted.ID)
}

func TestActivity_DeactivateSoftDelete(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	ownerToken, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("owner"), "password123", models.UserRoleSchool)
	strangerToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("stranger"), "password123", models.UserRoleSchool)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)
	activity := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, true)
	url := fmt.Sprintf("/api/v1/activities/%s", activity.ID)

	// Чужой аккаунт не может удалить
	res, _ := ts.SendRequest(t, http.MethodDelete, url, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, url, ownerToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	// Из публичного списка занятие ушло
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/activities", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, activity.ID)

	// Запись осталась в базе, но деактивирована
	var stored models.Activity
	require.NoError(t, ts.DB.First(&stored, "id = ?", activity.ID).Error)
	assert.False(t, stored.Active)
}
