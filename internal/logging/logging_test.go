package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("classify").Debug("hello")

	assert.Contains(t, buf.String(), "component=classify")
	assert.Contains(t, buf.String(), "hello")
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(slog.LevelInfo, "json", &buf)

	logger.Info("json check", "files", 3)

	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"files":3`)
}

func TestLevel_Gating(t *testing.T) {
	var buf bytes.Buffer
	Init(Level(false), "text", &buf)

	logger := New("gate")
	logger.Info("should be suppressed")
	logger.Warn("should appear")

	assert.NotContains(t, buf.String(), "should be suppressed")
	assert.Contains(t, buf.String(), "should appear")
	assert.Equal(t, slog.LevelDebug, Level(true))
}
