package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_Development(t *testing.T) {
	logger := NewLogger("development")
	require.NotNil(t, logger)
	logger.Info("test message")
}

func TestNewLogger_Production(t *testing.T) {
	logger := NewLogger("production")
	require.NotNil(t, logger)
	logger.Info("test message")
}

func TestNewLogger_WithLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "warn")
	defer os.Unsetenv("LOG_LEVEL")

	logger := NewLogger("development")
	require.NotNil(t, logger)
}

func TestNewLogger_WithInvalidLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "invalid_level")
	defer os.Unsetenv("LOG_LEVEL")

	// 無効なレベルでもパニックしない
	logger := NewLogger("development")
	require.NotNil(t, logger)
}

func TestSetAndGet(t *testing.T) {
	original := Get()
	defer Set(original)

	replacement := NewLogger("production")
	Set(replacement)
	require.Same(t, replacement, Get())
}
