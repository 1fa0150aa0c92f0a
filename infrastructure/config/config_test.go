package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "notes", cfg.NotesTable)
	assert.Equal(t, AuthModeToken, cfg.AuthMode)
	assert.Equal(t, 100, cfg.IPRateLimit)
	assert.Equal(t, 200, cfg.UserRateLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NOTES_TABLE_NAME", "notes-test")
	t.Setenv("AUTH_MODE", AuthModeGateway)
	t.Setenv("IS_OFFLINE", "true")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("IP_RATE_LIMIT", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "notes-test", cfg.NotesTable)
	assert.Equal(t, AuthModeGateway, cfg.AuthMode)
	assert.True(t, cfg.IsOffline)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDBEndpoint)
	assert.Equal(t, 10, cfg.IPRateLimit)
}

func TestValidate_RejectsUnknownAuthMode(t *testing.T) {
	cfg := &Config{Environment: "development", AuthMode: "yolo"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_StaticAuthMode(t *testing.T) {
	t.Run("rejected in production", func(t *testing.T) {
		cfg := &Config{
			Environment:    "production",
			AuthMode:       AuthModeStatic,
			DevPrincipalID: "dev-owner",
			NotesTable:     "notes",
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("needs a principal in development", func(t *testing.T) {
		cfg := &Config{Environment: "development", AuthMode: AuthModeStatic}
		assert.Error(t, cfg.Validate())
	})

	t.Run("allowed in development with principal", func(t *testing.T) {
		cfg := &Config{
			Environment:    "development",
			AuthMode:       AuthModeStatic,
			DevPrincipalID: "dev-owner",
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate_ProductionRequiresSecretForTokenMode(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		AuthMode:    AuthModeToken,
		NotesTable:  "notes",
	}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
