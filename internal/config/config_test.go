package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"), "", "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diametrics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":9000",
		"api_url": "http://file-api",
		"http_timeout": "5s",
		"cookie_secure": true
	}`), 0o644))
	t.Setenv("DIAMETRICS_API_URL", "http://env-api")
	t.Setenv("DIAMETRICS_SESSION_TTL", "1h")

	cfg, err := Load(path, ":7000", "/tmp/dm")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "/tmp/dm", cfg.DataDir)
	assert.Equal(t, "http://env-api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("DIAMETRICS_HTTP_TIMEOUT", "soon")

	_, err := Load("", "", "")
	assert.ErrorContains(t, err, "DIAMETRICS_HTTP_TIMEOUT")
}
