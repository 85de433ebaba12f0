package config

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/lessons",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "America/Los_Angeles", cfg.Location.String())
	assert.Equal(t, 28, cfg.BookingHorizonDays)
	assert.Equal(t, 7, cfg.AgendaHour)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Empty(t, cfg.ScheduleTemplatePath)
	assert.Empty(t, cfg.OverlapPolicy)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN":         "token",
		"DB_DSN":                 "postgres://localhost/lessons",
		"ENV":                    "production",
		"TIMEZONE":               "Europe/Moscow",
		"BOOKING_HORIZON_DAYS":   "14",
		"AGENDA_HOUR":            "6",
		"DB_MAX_CONNS":           "4",
		"OVERLAP_POLICY":         "intersection",
		"SCHEDULE_TEMPLATE_PATH": "schedule.yaml",
		"ADMIN_TELEGRAM_IDS":     "101, 202,",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, 14, cfg.BookingHorizonDays)
	assert.Equal(t, 6, cfg.AgendaHour)
	assert.Equal(t, int32(4), cfg.DBMaxConns)
	assert.Equal(t, "intersection", cfg.OverlapPolicy)
	assert.Equal(t, "schedule.yaml", cfg.ScheduleTemplatePath)
	assert.Equal(t, []int64{101, 202}, cfg.AdminTelegramIDs)
}

func TestFromEnv_Errors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"TELEGRAM_TOKEN": "token", "DB_DSN": "postgres://localhost/lessons"}
	}

	cases := map[string]func(map[string]string){
		"no token":       func(m map[string]string) { delete(m, "TELEGRAM_TOKEN") },
		"no dsn":         func(m map[string]string) { delete(m, "DB_DSN") },
		"bad timezone":   func(m map[string]string) { m["TIMEZONE"] = "Mars/Olympus" },
		"bad horizon":    func(m map[string]string) { m["BOOKING_HORIZON_DAYS"] = "soon" },
		"hour too large": func(m map[string]string) { m["AGENDA_HOUR"] = "24" },
		"zero conns":     func(m map[string]string) { m["DB_MAX_CONNS"] = "0" },
		"bad admin id":   func(m map[string]string) { m["ADMIN_TELEGRAM_IDS"] = "1,two" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := base()
			mutate(env)
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
