package validator

import (
	"log"

	"kidhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Правило не зарегистрировалось - приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила, основанные на statuses.go
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-lead-status", validateLeadStatus)
	mustRegister("is-activity-category", validateActivityCategory)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения проверяет 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleParent, models.UserRoleSchool, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateLeadStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.LeadStatus(value) {
	case models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusClosed:
		return true
	default:
		return false
	}
}

func validateActivityCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ActivityCategory(value) {
	case models.CategorySports, models.CategoryArts, models.CategoryMusic,
		models.CategoryDance, models.CategoryLanguages, models.CategoryScience,
		models.CategoryOther:
		return true
	default:
		return false
	}
}
