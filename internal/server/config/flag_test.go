package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		initial     *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:8080", "-r", ":9090", "-d", "db", "-s", "secret",
			"-t", "30", "-o", "https://blog.example", "-f", "/var/uploads", "-k", "s3", "-m", "1024",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			"-h", "argon2id", "-l", "console",
		},
			initial: &Config{},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:8080",
				EndpointAddrGRPC:            ":9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				CORSOrigin:                  "https://blog.example",
				UploadDir:                   "/var/uploads",
				StorageBackend:              "s3",
				MaxUploadBytes:              1024,
				S3RootUser:                  "user",
				S3RootPassword:              "password",
				S3Bucket:                    "bucket",
				S3Region:                    "us-west-1",
				S3BaseEndpoint:              "http://endpoint",
				PasswordHash:                "argon2id",
				LogFormat:                   "console",
			}},
		{name: "unset validity is left alone", args: []string{"cmd", "-c", "cfg.json", "-s", "k"},
			initial:  &Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: &Config{AccessTokenValidityDuration: 90 * time.Second, SecretKey: "k"},
		},
		{name: "bad int", args: []string{"cmd", "-m", "lots"}, initial: &Config{}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.initial

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
