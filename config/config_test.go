package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, 60, AppConfig.PollIntervalSeconds)
	assert.Equal(t, 7, AppConfig.ReminderWindowDays)
	assert.Equal(t, 24, AppConfig.ReminderStaleHours)
	assert.Equal(t, "smtp", AppConfig.EmailProvider)
	assert.Equal(t, "development", AppConfig.Env)
	assert.False(t, IsProduction())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "sendgrid")
	t.Setenv("REMINDER_WINDOW_DAYS", "14")

	LoadConfig()

	assert.Equal(t, "sendgrid", AppConfig.EmailProvider)
	assert.Equal(t, 14, AppConfig.ReminderWindowDays)
}
