package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.Contains(t, configCmd.Aliases, "settings")
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "path")
}

func TestConfigShow_PrintsEveryKey(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	for _, key := range domain.SettingKeys {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, domain.DefaultServiceURL)
	assert.Contains(t, out, "Config file: :memory:")
	assert.NotContains(t, out, "Warning:")
}

func TestConfigShow_DefaultsToShow(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestConfigShow_Check(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		setupTestServices(t)

		out, err := run(t, "config", "show", "--check")

		require.NoError(t, err)
		assert.Contains(t, out, "ok")
	})

	t.Run("unreachable", func(t *testing.T) {
		env := setupTestServices(t)
		env.tagger.pingErr = errors.New("connection refused")

		out, err := run(t, "config", "show", "--check")

		require.Error(t, err)
		assert.Contains(t, out, "unreachable")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestConfigSet(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "config", "set", domain.KeyServiceURL, "http://tagger.internal:9000")

	require.NoError(t, err)
	assert.Contains(t, out, "service.url = http://tagger.internal:9000/")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://tagger.internal:9000/", settings.ServiceURL)
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"non-numeric timeout", domain.KeyServiceTimeout, "soon"},
		{"negative timeout", domain.KeyServiceTimeout, "-5"},
		{"negative rate limit", domain.KeyServiceRateLimit, "-1.5"},
		{"bad boolean", domain.KeyUploadValidate, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := run(t, "config", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "config", "set", domain.KeyServiceURL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigPath(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, ":memory:\n", out)
}
