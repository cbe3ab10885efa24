package auth

import (
	"os"
	"testing"

	"kidhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("DATABASE_URL", "file:unused?mode=memory")
	os.Setenv("DATABASE_DRIVER", "sqlite")
	os.Setenv("JWT_SECRET", "unit_test_secret_key")
	config.LoadConfig()

	os.Exit(m.Run())
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-123", "parent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "parent", claims.Role)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_WrongSignature(t *testing.T) {
	token, err := GenerateToken("user-123", "parent")
	require.NoError(t, err)

	// Подпись от другого секрета не проходит
	config.AppConfig.JWT.Secret = "another_secret"
	defer func() { config.AppConfig.JWT.Secret = "unit_test_secret_key" }()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
}
