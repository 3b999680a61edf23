package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", false)

	logger.Info().Msg("hidden")
	logger.Warn().Str("lead_id", "rec1").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "rec1", entry["lead_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "loud", false)

	logger.Debug().Msg("debug")
	logger.Info().Msg("info")

	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "info")
}
