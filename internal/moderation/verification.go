package moderation

// Машина верификации School/Activity: два состояния, одно направленное
// ребро unverified -> verified. Обратных переходов нет.
type VerificationState string

const (
	StateUnverified VerificationState = "unverified"
	StateVerified   VerificationState = "verified"
)

// VerificationStateOf отображает хранимый флаг в состояние машины
func VerificationStateOf(verified bool) VerificationState {
	if verified {
		return StateVerified
	}
	return StateUnverified
}

// VerifyChanges сообщает, меняет ли verify текущее состояние.
// Повторная верификация - no-op, а не ошибка: конкурентные verify двух
// админов безопасны, запись в хранилище условная (только verified=false).
func VerifyChanges(current VerificationState) bool {
	return current == StateUnverified
}
