package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Success with defaults",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"FLOWY_API_BASE_URL": "http://localhost:8090/api/v1",
				"FLOWY_API_TIMEOUT":  "10",
				"FLOWY_AUTH_TOKEN":   "demo-token",
				"FLOWY_LANG":         "de",
				"LOG_LEVEL":          "debug",
				"LOG_FORMAT":         "json",
				"MOCK_HOST":          "localhost",
				"MOCK_PORT":          "9090",
			},
			expectError: false,
		},
		{
			name: "Error - invalid mock port",
			envVars: map[string]string{
				"MOCK_PORT": "99999",
			},
			expectError: true,
			errorMsg:    "invalid mock server port",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}

			os.Clearenv()
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL:        "http://localhost:8090/api/v1",
				TimeoutSeconds: 30,
				Lang:           "en",
			},
			Logger: LoggerConfig{
				Level:  "info",
				Format: "json",
			},
			Mock: MockConfig{
				Host: "0.0.0.0",
				Port: 8090,
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid configuration",
			mutate:      func(*Config) {},
			expectError: false,
		},
		{
			name:        "Invalid - empty base URL",
			mutate:      func(c *Config) { c.API.BaseURL = "" },
			expectError: true,
			errorMsg:    "API base URL is required",
		},
		{
			name:        "Invalid - zero timeout",
			mutate:      func(c *Config) { c.API.TimeoutSeconds = 0 },
			expectError: true,
			errorMsg:    "API timeout must be at least 1 second",
		},
		{
			name:        "Invalid - mock port too high",
			mutate:      func(c *Config) { c.Mock.Port = 99999 },
			expectError: true,
			errorMsg:    "invalid mock server port",
		},
		{
			name:        "Invalid - unknown log level",
			mutate:      func(c *Config) { c.Logger.Level = "verbose" },
			expectError: true,
			errorMsg:    "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMockConfig_Address(t *testing.T) {
	cfg := MockConfig{Host: "localhost", Port: 8090}
	assert.Equal(t, "localhost:8090", cfg.Address())
}

func TestGetEnv(t *testing.T) {
	os.Clearenv()

	os.Setenv("TEST_VAR", "test_value")
	assert.Equal(t, "test_value", getEnv("TEST_VAR", "default"))

	assert.Equal(t, "default", getEnv("NON_EXISTENT_VAR", "default"))

	os.Clearenv()
}

func TestGetEnvAsInt(t *testing.T) {
	os.Clearenv()

	os.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 10))

	os.Setenv("TEST_INVALID", "not_a_number")
	assert.Equal(t, 10, getEnvAsInt("TEST_INVALID", 10))

	assert.Equal(t, 10, getEnvAsInt("NON_EXISTENT_INT", 10))

	os.Clearenv()
}
