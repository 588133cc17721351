package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(func() {
		InfoLogger, ErrorLogger, DebugLogger = nil, nil, nil
	})

	require.NoError(t, InitLogger(dir))

	LogInfo("Order created: %s", "order_1")
	LogError("Webhook failed: %s", "order_2")

	day := time.Now().Format("2006-01-02")
	for _, level := range []string{"info", "error", "debug"} {
		_, err := os.Stat(filepath.Join(dir, level+"-"+day+".log"))
		assert.NoError(t, err, level)
	}

	b, err := os.ReadFile(filepath.Join(dir, "info-"+day+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "INFO: ")
	assert.Contains(t, string(b), "Order created: order_1")
	assert.Contains(t, string(b), "logger_test.go")
}

func TestLogWithoutInit(t *testing.T) {
	assert.NotPanics(t, func() {
		LogInfo("x")
		LogError("x")
		LogDebug("x")
	})
}
