package moderation

import (
	"testing"

	"kidhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_RoleTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    models.UserRole
		action  Action
		target  Target
		allowed bool
		reason  DenyReason
	}{
		{"parent creates lead", models.UserRoleParent, ActionCreateLead, Target{}, true, ""},
		{"school cannot create lead", models.UserRoleSchool, ActionCreateLead, Target{}, false, DenyWrongRole},
		{"admin cannot create lead", models.UserRoleAdmin, ActionCreateLead, Target{}, false, DenyWrongRole},

		{"owning school updates lead", models.UserRoleSchool, ActionUpdateLeadStatus, Target{OwnerID: "user-1"}, true, ""},
		{"foreign school cannot update lead", models.UserRoleSchool, ActionUpdateLeadStatus, Target{OwnerID: "someone-else"}, false, DenyNotOwner},
		{"admin updates any lead", models.UserRoleAdmin, ActionUpdateLeadStatus, Target{OwnerID: "someone-else"}, true, ""},
		{"parent cannot update lead status", models.UserRoleParent, ActionUpdateLeadStatus, Target{OwnerID: "user-1"}, false, DenyWrongRole},

		{"admin verifies school", models.UserRoleAdmin, ActionVerifySchool, Target{}, true, ""},
		{"school cannot verify itself", models.UserRoleSchool, ActionVerifySchool, Target{}, false, DenyWrongRole},
		{"admin verifies activity", models.UserRoleAdmin, ActionVerifyActivity, Target{}, true, ""},
		{"parent cannot verify activity", models.UserRoleParent, ActionVerifyActivity, Target{}, false, DenyWrongRole},

		{"school creates school", models.UserRoleSchool, ActionCreateSchool, Target{}, true, ""},
		{"parent cannot create school", models.UserRoleParent, ActionCreateSchool, Target{}, false, DenyWrongRole},

		{"school creates activity", models.UserRoleSchool, ActionCreateActivity, Target{}, true, ""},
		{"parent submits activity", models.UserRoleParent, ActionSubmitActivity, Target{}, true, ""},
		{"school cannot use parent submission", models.UserRoleSchool, ActionSubmitActivity, Target{}, false, DenyWrongRole},

		{"parent creates review", models.UserRoleParent, ActionCreateReview, Target{}, true, ""},
		{"admin cannot create review", models.UserRoleAdmin, ActionCreateReview, Target{}, false, DenyWrongRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.role, "user-1", tt.action, tt.target)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, d.Reason)
				assert.NotNil(t, d.Err())
			} else {
				assert.Nil(t, d.Err())
			}
		})
	}
}

func TestAuthorize_Anonymous(t *testing.T) {
	t.Parallel()

	for _, action := range []Action{
		ActionCreateLead, ActionUpdateLeadStatus, ActionVerifySchool,
		ActionVerifyActivity, ActionCreateSchool, ActionCreateActivity,
		ActionSubmitActivity, ActionCreateReview,
	} {
		d := Authorize(RoleAnonymous, "", action, Target{})
		assert.False(t, d.Allowed, "anonymous must be denied for %s", action)
		assert.Equal(t, DenyNotAuthenticated, d.Reason)
	}

	// Пустая роль трактуется как неаутентифицированный запрос
	d := Authorize("", "user-1", ActionCreateLead, Target{})
	assert.Equal(t, DenyNotAuthenticated, d.Reason)
}

func TestAuthorize_UnknownActionDeniedByDefault(t *testing.T) {
	t.Parallel()

	d := Authorize(models.UserRoleAdmin, "user-1", Action("school:delete"), Target{})
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyWrongRole, d.Reason)
}
