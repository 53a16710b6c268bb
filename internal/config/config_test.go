package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, time.Second, cfg.Settle.Delay)
	assert.Equal(t, 1, cfg.Settle.PollAttempts)
	assert.Equal(t, ":3000", cfg.Serve.Listen)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Serve.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Serve.SessionTTL)

	settle := cfg.FormSettle()
	assert.Equal(t, time.Second, settle.Delay)
	assert.Equal(t, 1, settle.PollAttempts)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume-parser.yaml")
	content := `
base-url: https://analyzer.example.com/
timeout: 45s
settle:
  delay: 250ms
  poll-attempts: 4
  poll-interval: 2s
serve:
  listen: 127.0.0.1:8080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://analyzer.example.com", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Settle.Delay)
	assert.Equal(t, 4, cfg.Settle.PollAttempts)
	assert.Equal(t, 2*time.Second, cfg.Settle.PollInterval)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Listen)

	opts := cfg.BackendOptions("token")
	assert.Equal(t, "https://analyzer.example.com", opts.BaseURL)
	assert.Equal(t, "token", opts.Token)
	assert.Equal(t, 45*time.Second, opts.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RESUME_PARSER_BASE_URL", "http://backend:9000")
	t.Setenv("RESUME_PARSER_SETTLE_POLL_ATTEMPTS", "3")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Settle.PollAttempts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{name: "relative base url", key: "base-url", value: "localhost", want: "BaseURL"},
		{name: "empty base url", key: "base-url", value: "", want: "this field is required"},
		{name: "zero attempts", key: "settle.poll-attempts", value: 0, want: "PollAttempts"},
		{name: "negative delay", key: "settle.delay", value: -time.Second, want: "Delay"},
		{name: "no listen address", key: "serve.listen", value: "", want: "Listen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
