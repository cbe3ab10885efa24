package moderation

import (
	"fmt"

	"kidhub_backend/internal/models"
	"kidhub_backend/pkg/apperrors"
)

// Таблица переходов статуса лида.
// closed - терминальный статус, из него переходов нет.
var leadTransitions = map[models.LeadStatus][]models.LeadStatus{
	models.LeadStatusNew:       {models.LeadStatusContacted, models.LeadStatusClosed},
	models.LeadStatusContacted: {models.LeadStatusClosed},
	models.LeadStatusClosed:    {},
}

// ValidLeadStatus проверяет, что статус вообще существует
func ValidLeadStatus(s models.LeadStatus) bool {
	_, ok := leadTransitions[s]
	return ok
}

// CanTransitionLead проверяет допустимость перехода from -> to
func CanTransitionLead(from, to models.LeadStatus) bool {
	for _, next := range leadTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LeadPredecessors возвращает статусы, из которых разрешен переход в to.
// Используется для compare-and-set в репозитории: UPDATE проходит только
// если текущий статус - один из допустимых предшественников.
func LeadPredecessors(to models.LeadStatus) []models.LeadStatus {
	var from []models.LeadStatus
	for status, nexts := range leadTransitions {
		for _, next := range nexts {
			if next == to {
				from = append(from, status)
			}
		}
	}
	return from
}

// ErrLeadTransition строит ошибку запрещенного перехода
func ErrLeadTransition(from, to models.LeadStatus) *apperrors.AppError {
	return apperrors.ErrInvalidTransition(
		"lead",
		fmt.Sprintf("Lead status cannot change from '%s' to '%s'", from, to),
	)
}
