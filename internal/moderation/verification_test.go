package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationStateOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StateUnverified, VerificationStateOf(false))
	assert.Equal(t, StateVerified, VerificationStateOf(true))
}

func TestVerifyChanges_Idempotent(t *testing.T) {
	t.Parallel()

	// Первый verify меняет состояние, повторный - no-op без ошибки
	assert.True(t, VerifyChanges(StateUnverified))
	assert.False(t, VerifyChanges(StateVerified))
}
