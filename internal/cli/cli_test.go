package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api/apitest"
	"github.com/kidandcat/diametrics/internal/db"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "serve")
	assert.Contains(t, buf.String(), "export")
}

func TestExportWritesCSV(t *testing.T) {
	fake := apitest.New()
	defer fake.Close()
	fake.SeedGlucose(model.GlucoseReading{Date: "2024-01-08", Value: 104})

	t.Setenv("DIAMETRICS_API_URL", fake.URL)
	t.Setenv("DIAMETRICS_PASSWORD", fake.Password)
	out := filepath.Join(t.TempDir(), "export.csv")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"export", "--config", "", "--user", fake.Username, "--format", "csv", "-o", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GLUCOSE READINGS\nDate,Value (mg/dL)\n2024-01-08,104\n")
	assert.Contains(t, buf.String(), "Wrote "+out)
	assert.Equal(t, 1, fake.CallCount("POST /auth/logout"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"export", "--user", "alice", "--format", "pdf"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, rootCmd.Execute(), `unknown format "pdf"`)
}

func TestSweepDropsStoresOfExpiredSessions(t *testing.T) {
	require.NoError(t, db.Init(t.TempDir()))
	defer db.Close()

	live, err := db.CreateSession("alice", "tok-a", time.Hour)
	require.NoError(t, err)
	expired, err := db.CreateSession("bob", "tok-b", -time.Hour)
	require.NoError(t, err)

	sessions := state.NewSessions()
	sessions.Get(live.Token, "alice", "2024-01-08")
	sessions.Get(expired.Token, "bob", "2024-01-08")
	sessions.Get("unknown-token", "carol", "2024-01-08")
	require.Equal(t, 3, sessions.Len())

	sweepSessions(time.Now(), sessions, zap.NewNop())
	assert.Equal(t, 1, sessions.Len())

	_, err = db.GetSession(live.Token)
	assert.NoError(t, err)
}
