package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/config"
)

func TestJSONHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: "json", Level: "WARN"}))

	logger.Info("dropped")
	logger.Warn("low stock", slog.Int("product_id", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "low stock", rec["msg"])
	assert.EqualValues(t, 3, rec["product_id"])
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: "TEXT", Level: "INFO"}))

	logger.Info("server started", slog.String("addr", "127.0.0.1:8080"))
	assert.Contains(t, buf.String(), "server started")
	assert.Contains(t, buf.String(), "127.0.0.1:8080")
}
