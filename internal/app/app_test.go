package app

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		body, err := fs.ReadFile(embeddedMigrations, "migrations/"+e.Name())
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(e.Name(), ".sql"), e.Name())
		assert.Contains(t, string(body), "-- +goose Up", e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}
}

func TestEmbeddedMigrations_GuardBookingStarts(t *testing.T) {
	var all strings.Builder
	entries, err := fs.ReadDir(embeddedMigrations, "migrations")
	require.NoError(t, err)
	for _, e := range entries {
		body, err := fs.ReadFile(embeddedMigrations, "migrations/"+e.Name())
		require.NoError(t, err)
		all.Write(body)
	}

	// одна активная запись на минуту и инструктора, и одна без инструктора
	sql := all.String()
	assert.Contains(t, sql, "uq_bookings_instructor_start")
	assert.Contains(t, sql, "uq_bookings_unassigned_start")
	assert.Contains(t, sql, "instructor_id IS NULL")
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("production", "warn")
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	dev := NewLogger("development", "")
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	assert.Panics(t, func() { NewLogger("development", "loud") })
}
