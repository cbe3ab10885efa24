package moderation

import (
	"testing"

	"kidhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionLead(t *testing.T) {
	t.Parallel()

	// Разрешено: только вперед
	assert.True(t, CanTransitionLead(models.LeadStatusNew, models.LeadStatusContacted))
	assert.True(t, CanTransitionLead(models.LeadStatusNew, models.LeadStatusClosed))
	assert.True(t, CanTransitionLead(models.LeadStatusContacted, models.LeadStatusClosed))

	// Запрещено: назад и из терминального
	assert.False(t, CanTransitionLead(models.LeadStatusContacted, models.LeadStatusNew))
	assert.False(t, CanTransitionLead(models.LeadStatusClosed, models.LeadStatusContacted))
	assert.False(t, CanTransitionLead(models.LeadStatusClosed, models.LeadStatusNew))
	assert.False(t, CanTransitionLead(models.LeadStatusClosed, models.LeadStatusClosed))
	assert.False(t, CanTransitionLead(models.LeadStatusNew, models.LeadStatusNew))
}

func TestLeadPredecessors(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t,
		[]models.LeadStatus{models.LeadStatusNew},
		LeadPredecessors(models.LeadStatusContacted))

	assert.ElementsMatch(t,
		[]models.LeadStatus{models.LeadStatusNew, models.LeadStatusContacted},
		LeadPredecessors(models.LeadStatusClosed))

	assert.Empty(t, LeadPredecessors(models.LeadStatusNew))
}

func TestValidLeadStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidLeadStatus(models.LeadStatusNew))
	assert.True(t, ValidLeadStatus(models.LeadStatusContacted))
	assert.True(t, ValidLeadStatus(models.LeadStatusClosed))
	assert.False(t, ValidLeadStatus(models.LeadStatus("archived")))
}

func TestErrLeadTransition(t *testing.T) {
	t.Parallel()

	err := ErrLeadTransition(models.LeadStatusClosed, models.LeadStatusContacted)
	assert.Contains(t, err.Message, "closed")
	assert.Contains(t, err.Message, "contacted")
}
