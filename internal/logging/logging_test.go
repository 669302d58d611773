package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init(&buf, "info", "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("ingested", slog.Int("season", 2024))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ingested", rec["msg"])
	assert.Equal(t, float64(2024), rec["season"])
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init(&buf, "warn", "text")
	require.NoError(t, err)
	logger.Info("quiet")
	assert.Empty(t, buf.String())

	SetLevel(slog.LevelDebug)
	logger.Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestInitRejectsUnknown(t *testing.T) {
	_, err := Init(&bytes.Buffer{}, "verbose", "text")
	assert.Error(t, err)
	_, err = Init(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
