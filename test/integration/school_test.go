package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"kidhub_backend/internal/models"
	"kidhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchool_CreateOnePerAccount(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	token, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/schools", token, map[string]interface{}{
		"name": "Music Academy",
		"city": "Sofia",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"verified":false`)

	// Вторая школа на тот же аккаунт
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/schools", token, map[string]interface{}{
		"name": "Second School",
		"city": "Sofia",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)

	// Своя школа через /my
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/schools/my", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Music Academy")
}

func TestSchool_ParentCannotCreate(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	token, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("parent"), "password123", models.UserRoleParent)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/schools", token, map[string]interface{}{
		"name": "Fake School",
		"city": "Sofia",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestSchool_VerifyIdempotentAdminOnly(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	schoolToken, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)
	adminToken, _ := helpers.CreateAdmin(t, ts)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", false)
	verifyURL := fmt.Sprintf("/api/v1/admin/schools/%s/verify", school.ID)

	// Не-админ получает 403
	res, _ := ts.SendRequest(t, http.MethodPost, verifyURL, schoolToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Школа видна в очереди модерации
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/schools/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, school.ID)

	// Верификация
	res, bodyStr = ts.SendRequest(t, http.MethodPost, verifyURL, adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"verified":true`)

	// Повторная верификация - тот же результат, не ошибка
	res, bodyStr = ts.SendRequest(t, http.MethodPost, verifyURL, adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"verified":true`)

	// Из очереди модерации школа ушла
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/schools/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, school.ID)
}

func TestSchool_ListCityAndVerifiedOnlyFilters(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	_, sofiaOwner := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("sofia"), "password123", models.UserRoleSchool)
	_, plovdivOwner := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("plovdiv"), "password123", models.UserRoleSchool)
	_, pendingOwner := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("pending"), "password123", models.UserRoleSchool)

	sofiaSchool := helpers.CreateSchool(t, ts.DB, sofiaOwner, "Sofia", true)
	plovdivSchool := helpers.CreateSchool(t, ts.DB, plovdivOwner, "Plovdiv", true)
	pending := helpers.CreateSchool(t, ts.DB, pendingOwner, "Sofia", false)

	// Пустой фильтр ничего не сужает: в списке и неверифицированная школа
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/schools", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, sofiaSchool.ID)
	assert.Contains(t, bodyStr, plovdivSchool.ID)
	assert.Contains(t, bodyStr, pending.ID)

	// verified_only оставляет только верифицированные
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/schools?verified_only=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, sofiaSchool.ID)
	assert.Contains(t, bodyStr, plovdivSchool.ID)
	assert.NotContains(t, bodyStr, pending.ID)

	// Город сравнивается без учета регистра
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/schools?city=sofia&verified_only=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, sofiaSchool.ID)
	assert.NotContains(t, bodyStr, plovdivSchool.ID)
}

func TestSchool_NeighborhoodFilterRequiresMatchingCity(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	_, ownerA := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("a"), "password123", models.UserRoleSchool)
	_, ownerB := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("b"), "password123", models.UserRoleSchool)

	lozenets := helpers.CreateNeighborhood(t, ts.DB, "Sofia", "Lozenets")

	inLozenets := helpers.CreateSchool(t, ts.DB, ownerA, "Sofia", true)
	require.NoError(t, ts.DB.Model(inLozenets).Update("neighborhood_id", lozenets.ID).Error)
	elsewhere := helpers.CreateSchool(t, ts.DB, ownerB, "Sofia", true)

	// city + neighborhood_id сужают выборку
	url := fmt.Sprintf("/api/v1/schools?city=Sofia&neighborhood_id=%s", lozenets.ID)
	res, bodyStr := ts.SendRequest(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, inLozenets.ID)
	assert.NotContains(t, bodyStr, elsewhere.ID)

	// neighborhood_id без city отбрасывается
	url = fmt.Sprintf("/api/v1/schools?neighborhood_id=%s", lozenets.ID)
	res, bodyStr = ts.SendRequest(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, inLozenets.ID)
	assert.Contains(t, bodyStr, elsewhere.ID)

	// neighborhood_id с чужим городом тоже отбрасывается
	url = fmt.Sprintf("/api/v1/schools?city=Plovdiv&neighborhood_id=%s", lozenets.ID)
	res, bodyStr = ts.SendRequest(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, inLozenets.ID)
}

func TestSchool_UpdateOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	ownerToken, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("owner"), "password123", models.UserRoleSchool)
	strangerToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("stranger"), "password123", models.UserRoleSchool)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)
	url := fmt.Sprintf("/api/v1/schools/%s", school.ID)

	// Чужой school-аккаунт не может редактировать
	res, _ := ts.SendRequest(t, http.MethodPut, url, strangerToken, map[string]interface{}{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Владелец может
	res, bodyStr := ts.SendRequest(t, http.MethodPut, url, ownerToken, map[string]interface{}{
		"name":        "Renamed School",
		"description": "Updated description",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.School
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Equal(t, "Renamed School", updated.Name)
	// Верификация update'ом не сбрасывается
	assert.True(t, updated.Verified)
}
