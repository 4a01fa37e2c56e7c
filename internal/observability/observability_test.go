// SPDX-License-Identifier: MIT

package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matprod/internal/prompt"
)

func TestMetrics_AllocationLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordAllocation(2, 3)
	m.RecordAllocation(3, 4)
	m.RecordRelease(2, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AllocationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReleasesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LiveMatrices))
	assert.Equal(t, 18.0, testutil.ToFloat64(m.ElementsAllocated))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count) // the retries vec has no series yet
}

func TestMetrics_RetriesAndMultiplications(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordRetry(prompt.KindDimension)
	m.RecordRetry(prompt.KindElement)
	m.RecordRetry(prompt.KindElement)
	m.RecordMultiplication()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InputRetriesTotal.WithLabelValues(prompt.KindDimension)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.InputRetriesTotal.WithLabelValues(prompt.KindElement)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MultiplicationsTotal))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, slog.LevelInfo, FormatJSON)
	require.NoError(t, err)
	logger.Info("product computed", "rows", 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "product computed", rec["msg"])

	buf.Reset()
	logger, err = NewLogger(&buf, slog.LevelInfo, FormatText)
	require.NoError(t, err)
	logger.Info("product computed", "rows", 2)
	assert.True(t, strings.Contains(buf.String(), "msg=\"product computed\""))

	// A bytes.Buffer is never a terminal: auto selects JSON.
	buf.Reset()
	logger, err = NewLogger(&buf, slog.LevelWarn, FormatAuto)
	require.NoError(t, err)
	logger.Info("filtered out")
	assert.Empty(t, buf.String())
	logger.Warn("kept")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	require.Error(t, err)
}
