package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-b", "postgres", "-d", "db",
				"-f", "users.json", "-s", "secret", "-t", "60", "-m", "120", "-r", "30",
			},
			expected: &Config{
				EndpointAddr:               "127.0.0.1:9090",
				StoreBackend:               StoreBackendPostgres,
				DatabaseDSN:                "db",
				UserFilePath:               "users.json",
				SecretKey:                  "secret",
				SessionValidityDuration:    60 * time.Minute,
				RememberMeValidityDuration: 120 * time.Minute,
				ResetTokenValidityDuration: 30 * time.Minute,
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-a", ":9999", "-z", "nope"},
			expected: &Config{
				EndpointAddr: ":9999",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			parseFlags(config)

			assert.Equal(t, tt.expected, config)
		})
	}
}
