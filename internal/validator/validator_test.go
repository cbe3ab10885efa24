package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,is-user-role"`
	Status   string `json:"status" validate:"omitempty,is-lead-status"`
	Category string `json:"category" validate:"omitempty,is-activity-category"`
	Rating   int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleDTO{
		Email:    "parent@example.com",
		Role:     "parent",
		Status:   "contacted",
		Category: "sports",
		Rating:   5,
	})
	assert.NoError(t, err)
}

func TestValidate_CustomRules(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleDTO{
		Email:    "parent@example.com",
		Role:     "teacher", // нет такой роли
		Status:   "archived",
		Category: "chess",
	})

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Contains(t, vErr.Errors, "role")
	assert.Contains(t, vErr.Errors, "status")
	assert.Contains(t, vErr.Errors, "category")
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleDTO{Role: "parent", Rating: 9})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	// имя поля из json-тега, не имя Go-поля
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "rating")
	assert.NotContains(t, vErr.Errors, "Email")
}
