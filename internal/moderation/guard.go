package moderation

import (
	"kidhub_backend/internal/models"
	"kidhub_backend/pkg/apperrors"
)

// Action - идентификатор привилегированного действия
type Action string

const (
	ActionCreateLead       Action = "lead:create"
	ActionUpdateLeadStatus Action = "lead:update_status"
	ActionVerifySchool     Action = "school:verify"
	ActionVerifyActivity   Action = "activity:verify"
	ActionCreateSchool     Action = "school:create"
	ActionCreateActivity   Action = "activity:create"
	ActionSubmitActivity   Action = "activity:submit"
	ActionCreateReview     Action = "review:create"
)

// RoleAnonymous - псевдороль для неаутентифицированного запроса
const RoleAnonymous models.UserRole = "anonymous"

// DenyReason - причина отказа
type DenyReason string

const (
	DenyNotAuthenticated DenyReason = "not-authenticated"
	DenyWrongRole        DenyReason = "wrong-role"
	DenyNotOwner         DenyReason = "not-owner"
)

// Target - данные о владении целевой сущностью.
// OwnerID заполняется только для действий, где владение имеет значение
// (смена статуса лида владеющей школой).
type Target struct {
	OwnerID string
}

// Decision - результат проверки. Чистое значение без side effects.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Фиксированная таблица "действие -> допустимые роли".
// Любое действие вне таблицы запрещено по умолчанию.
var allowedRoles = map[Action][]models.UserRole{
	ActionCreateLead:       {models.UserRoleParent},
	ActionUpdateLeadStatus: {models.UserRoleSchool, models.UserRoleAdmin},
	ActionVerifySchool:     {models.UserRoleAdmin},
	ActionVerifyActivity:   {models.UserRoleAdmin},
	ActionCreateSchool:     {models.UserRoleSchool},
	ActionCreateActivity:   {models.UserRoleSchool},
	ActionSubmitActivity:   {models.UserRoleParent},
	ActionCreateReview:     {models.UserRoleParent},
}

// Действия, где вызывающий (кроме админа) обязан владеть целевой сущностью
var ownerChecked = map[Action]bool{
	ActionUpdateLeadStatus: true,
}

// Authorize решает, разрешено ли действие, до любой мутации состояния.
// Функция детерминирована и тотальна: каждая пара (роль, действие)
// дает определенный исход.
func Authorize(role models.UserRole, requesterID string, action Action, target Target) Decision {
	if role == RoleAnonymous || role == "" || requesterID == "" {
		return deny(DenyNotAuthenticated)
	}

	roles, known := allowedRoles[action]
	if !known {
		return deny(DenyWrongRole)
	}

	matched := false
	for _, r := range roles {
		if r == role {
			matched = true
			break
		}
	}
	if !matched {
		return deny(DenyWrongRole)
	}

	// Админ не проходит проверку владения
	if ownerChecked[action] && role != models.UserRoleAdmin {
		if target.OwnerID == "" || target.OwnerID != requesterID {
			return deny(DenyNotOwner)
		}
	}

	return allow
}

// Err преобразует отказ в AppError для границы запроса
func (d Decision) Err() *apperrors.AppError {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyNotAuthenticated:
		return apperrors.NewUnauthorizedError("Authentication required")
	case DenyNotOwner:
		return apperrors.ErrNotOwner
	default:
		return apperrors.ErrInsufficientPermissions
	}
}
