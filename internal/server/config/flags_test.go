package config

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-d", "db", "-l", "debug",
				"-s", "secret", "-i", "planit", "-u", "planit-clients", "-t", "15", "-k", "512",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				EndpointAddrGRPC: "127.0.0.1:9091",
				DatabaseDSN:      "db",
				LogLevel:         "debug",
				JWT: JWT{
					Secret:          "secret",
					Issuer:          "planit",
					Audience:        "planit-clients",
					ExpiryInMinutes: 15,
					KeySizeInBits:   512,
				},
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "config.json", "-x", "1", "-a", ":1"},
			expected: &Config{EndpointAddrHTTP: ":1"},
		},
		{
			name:     "no flags",
			args:     nil,
			expected: &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			require.NoError(t, parseFlags(c, tt.args))
			if diff := cmp.Diff(tt.expected, c); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSecretFlagMarkedDevelopmentOnly(t *testing.T) {
	fs := newFlagSet(&Config{})

	f := fs.Lookup("s")
	require.NotNil(t, f)
	assert.Equal(t, SecretFlagUsage, f.Usage)
	assert.Contains(t, f.Usage, "development only")
	assert.Contains(t, f.Usage, "PLANIT_JWT_SECRET")

	var help bytes.Buffer
	fs.SetOutput(&help)
	fs.PrintDefaults()
	assert.Contains(t, help.String(), "development only")
}
