package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "v", record["k"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("careful")

	assert.Contains(t, buf.String(), "msg=careful")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	runID := NewRunID()
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	enriched := EnrichLogger(logger, runID, "render")
	LogCommandStart(enriched, "<arg>", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, runID, record["run_id"])
	assert.Equal(t, "render", record["command"])
	assert.Equal(t, "<arg>", record["template"])
	assert.EqualValues(t, 2, record["values"])

	assert.Nil(t, EnrichLogger(nil, runID, "render"))
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCommandStart(nil, "x", 0)
		LogCommandComplete(nil, time.Now())
		LogCommandError(nil, errors.New("boom"))
	})
}

func TestLogCommandError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "error"})
	require.NoError(t, err)

	LogCommandComplete(logger, time.Now())
	LogCommandError(logger, errors.New("boom"))

	assert.NotContains(t, buf.String(), "command completed")
	assert.Contains(t, buf.String(), `error=boom`)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
