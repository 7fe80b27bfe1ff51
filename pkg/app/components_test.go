package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/tebex-headless/pkg/config"
)

type fixedPathFinder string

func (f fixedPathFinder) FindConfigPath() string { return string(f) }

func TestInitializeConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tebex:\n  webstore_identifier: acc1\n"), 0644))

	cfg, source, err := InitializeConfig(&DefaultConfigPathFinder{ConfigFlag: path})
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "acc1", cfg.Tebex.WebstoreIdentifier)
}

func TestInitializeConfig_FromEnv(t *testing.T) {
	t.Setenv("TEBEX_WEBSTORE_IDENTIFIER", "acc-env")
	t.Setenv("TEBEX_PRIVATE_KEY", "key-env")
	t.Setenv("TEBEX_BASE_URL", "")
	t.Setenv("TEBEX_TIMEOUT", "5s")

	cfg, source, err := InitializeConfig(fixedPathFinder(""))
	require.NoError(t, err)
	assert.Equal(t, "env", source)
	assert.Equal(t, "acc-env", cfg.Tebex.WebstoreIdentifier)
	assert.Equal(t, "key-env", cfg.Tebex.PrivateKey)
	assert.Equal(t, config.DefaultBaseURL, cfg.Tebex.BaseURL)
	assert.Equal(t, "5s", cfg.Tebex.Timeout)
}

func TestInitializeConfig_MissingFlagFile(t *testing.T) {
	_, _, err := InitializeConfig(&DefaultConfigPathFinder{ConfigFlag: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	comps, err := Initialize(&config.AppConfig{Tebex: config.TebexConfig{WebstoreIdentifier: "acc1"}})
	require.NoError(t, err)
	assert.Equal(t, "acc1", comps.Client.WebstoreIdentifier())
	assert.Equal(t, config.DefaultBaseURL, comps.Client.BaseURL())

	_, err = Initialize(nil)
	assert.Error(t, err)
}

func TestValidateWebstoreIdentifier(t *testing.T) {
	assert.Error(t, ValidateWebstoreIdentifier(""))
	assert.Error(t, ValidateWebstoreIdentifier("${TEBEX_WEBSTORE_IDENTIFIER}"))
	assert.NoError(t, ValidateWebstoreIdentifier("acc1"))
}
