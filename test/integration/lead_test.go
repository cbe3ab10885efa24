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

// Полный путь: школа регистрируется и заводит занятие, админ верифицирует,
// родитель оставляет заявку, школа и админ двигают ее по воронке.
func TestLead_FullFunnel(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	schoolToken, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)
	parentToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("parent"), "password123", models.UserRoleParent)
	adminToken, _ := helpers.CreateAdmin(t, ts)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", false)
	activity := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, false)

	// Админ верифицирует школу и занятие, повторная верификация идемпотентна
	res, bodyStr := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/schools/%s/verify", school.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/activities/%s/verify", activity.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/activities/%s/verify", activity.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Родитель оставляет заявку
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/leads", parentToken, map[string]interface{}{
		"activity_id": activity.ID,
		"child_age":   9,
		"message":     "Interested in a trial lesson",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"new"`)

	var lead models.Lead
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &lead))
	statusURL := fmt.Sprintf("/api/v1/leads/%s/status", lead.ID)

	// Повторная заявка на то же занятие
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/leads", parentToken, map[string]interface{}{
		"activity_id": activity.ID,
		"child_age":   9,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)

	// Родитель не может менять статус
	res, _ = ts.SendRequest(t, http.MethodPatch, statusURL, parentToken, map[string]interface{}{
		"status": "contacted",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Владелец школы связался с родителем
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, statusURL, schoolToken, map[string]interface{}{
		"status": "contacted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"contacted"`)

	// Откат назад запрещен
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, statusURL, schoolToken, map[string]interface{}{
		"status": "new",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)

	// Админ закрывает лид
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, statusURL, adminToken, map[string]interface{}{
		"status": "closed",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"closed"`)

	// closed - терминальный статус
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, statusURL, schoolToken, map[string]interface{}{
		"status": "contacted",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestLead_ChildAgeMustFitActivityRange(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	parentToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("parent"), "password123", models.UserRoleParent)
	_, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)
	activity := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, true)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", parentToken, map[string]interface{}{
		"activity_id": activity.ID,
		"child_age":   15,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "VALIDATION_FAILED")

	// Граница диапазона включительно
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/leads", parentToken, map[string]interface{}{
		"activity_id": activity.ID,
		"child_age":   12,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
}

func TestLead_Visibility(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	defer ts.Close()

	parentToken, parentID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("parent"), "password123", models.UserRoleParent)
	otherParentToken, _ := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("other"), "password123", models.UserRoleParent)
	schoolToken, ownerID := helpers.RegisterAndLogin(t, ts, helpers.UniqueEmail("school"), "password123", models.UserRoleSchool)

	school := helpers.CreateSchool(t, ts.DB, ownerID, "Sofia", true)
	activity := helpers.CreateActivity(t, ts.DB, school.ID, ownerID, 6, 12, true)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", parentToken, map[string]interface{}{
		"activity_id": activity.ID,
		"child_age":   8,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var lead models.Lead
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &lead))
	leadURL := fmt.Sprintf("/api/v1/leads/%s", lead.ID)

	// Автор видит свой лид
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/leads/my", parentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, lead.ID)
	assert.Contains(t, bodyStr, parentID)

	// Школа видит лиды своих занятий
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/leads/school", schoolToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, lead.ID)

	// Посторонний родитель лид не видит
	res, _ = ts.SendRequest(t, http.MethodGet, leadURL, otherParentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Владелец школы видит лид напрямую
	res, _ = ts.SendRequest(t, http.MethodGet, leadURL, schoolToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Админ без своей школы видит все лиды
	adminToken, _ := helpers.CreateAdmin(t, ts)
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/leads/school", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, lead.ID)
}
