package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyphaxBN/pointage-admin/pkg/config"
)

type testConfig struct {
	BaseURL string `env:"TEST_API_BASE_URL" envDefault:"http://localhost:8000"`
	Level   string `env:"TEST_LOG_LEVEL" envDefault:"info"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "info", cfg.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_API_BASE_URL", "https://pointage.example.com")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://pointage.example.com", cfg.BaseURL)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
