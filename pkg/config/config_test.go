package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEBEX_WEBSTORE_IDENTIFIER", "acc1")
	t.Setenv("TEBEX_PRIVATE_KEY", "secret")

	cfg, err := Parse([]byte(`
tebex:
  webstore_identifier: "${TEBEX_WEBSTORE_IDENTIFIER}"
  private_key: "${TEBEX_PRIVATE_KEY}"
app:
  debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, "acc1", cfg.Tebex.WebstoreIdentifier)
	assert.Equal(t, "secret", cfg.Tebex.PrivateKey)
	assert.Equal(t, DefaultBaseURL, cfg.Tebex.BaseURL)
	assert.Equal(t, "30s", cfg.Tebex.Timeout)
	assert.True(t, cfg.App.Debug)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "relative base url",
			yaml: "tebex:\n  base_url: headless.tebex.io\n",
		},
		{
			name: "bad timeout",
			yaml: "tebex:\n  timeout: forever\n",
		},
		{
			name: "private key without identifier",
			yaml: "tebex:\n  private_key: secret\n",
		},
		{
			name: "broken yaml",
			yaml: "tebex: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	cfg := TebexConfig{Timeout: "5s"}
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	d, err = (&TebexConfig{}).TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tebex:\n  webstore_identifier: acc1\n  base_url: http://localhost:8080\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acc1", cfg.Tebex.WebstoreIdentifier)
	assert.Equal(t, "http://localhost:8080", cfg.Tebex.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
