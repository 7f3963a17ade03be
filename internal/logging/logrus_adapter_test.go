package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		entries = append(entries, m)
	}
	return entries
}

func TestNewLogrusAdapter_LevelAndFormat(t *testing.T) {
	tests := []struct {
		level, format string
		want          logrus.Level
		json          bool
	}{
		{"debug", "text", logrus.DebugLevel, false},
		{"WARN", "JSON", logrus.WarnLevel, true},
		{"bogus", "text", logrus.InfoLevel, false},
	}

	for _, tc := range tests {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			adapter := NewLogrusAdapter(tc.level, tc.format).(*LogrusAdapter)
			assert.Equal(t, tc.want, adapter.logger.Level)
			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tc.json, isJSON)
		})
	}
}

func TestLogrusAdapter_PurchaseFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusAdapterWithOutput("info", "json", &buf)

	log.WithFields(
		F(FieldOperation, OpCreatePurchase),
		F(FieldPurchaseID, "id-1"),
	).Info("Purchase created", F(FieldPurchaseName, "Notebook"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Purchase created", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, OpCreatePurchase, entries[0][FieldOperation])
	assert.Equal(t, "id-1", entries[0][FieldPurchaseID])
	assert.Equal(t, "Notebook", entries[0][FieldPurchaseName])
}

func TestLogrusAdapter_WithErrorAndField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusAdapterWithOutput("debug", "json", &buf)

	derived := log.WithField(FieldStorageKey, "compras_parceladas_data").WithError(errors.New("disk full"))
	derived.Warn("Could not save")
	log.Debug("plain")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "disk full", entries[0]["error"])
	assert.Equal(t, "compras_parceladas_data", entries[0][FieldStorageKey])
	assert.NotContains(t, entries[1], FieldStorageKey, "derived loggers do not leak fields into the parent")
}

func TestLogrusAdapter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusAdapterWithOutput("warn", "text", &buf)

	log.Info("hidden")
	log.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	base := logrus.New()
	assert.Same(t, base, NewLogrusAdapterFromLogger(base).(*LogrusAdapter).logger)
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil).(*LogrusAdapter).logger)
}
