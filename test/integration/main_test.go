package integration_test

import (
	"os"
	"testing"

	"kidhub_backend/internal/config"
	"kidhub_backend/internal/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("DATABASE_URL", "file:unused?mode=memory")
	os.Setenv("DATABASE_DRIVER", "sqlite")
	os.Setenv("SERVER_ENV", "test")
	os.Setenv("JWT_SECRET", "test_secret_key_1234567890")

	config.LoadConfig()
	logger.Init("test")

	os.Exit(m.Run())
}
