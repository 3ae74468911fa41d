package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, 500*time.Millisecond, cfg.Auth.LoginDelay)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoad_MongoBackendRequiresURI(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMongo)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoad_MongoBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMongo)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "granja", cfg.MongoDB.DBName)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "planilha")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_LoginDelayForms(t *testing.T) {
	t.Run("milliseconds", func(t *testing.T) {
		t.Setenv("AUTH_LOGIN_DELAY", "250")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.Auth.LoginDelay)
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("AUTH_LOGIN_DELAY", "2s")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.Auth.LoginDelay)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("AUTH_LOGIN_DELAY", "logo")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate_SheetsMirrorNeedsSpreadsheet(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEET_MIRROR_ID")
}
