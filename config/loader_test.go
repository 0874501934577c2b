package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
gtfs:
  dir: data/gtfs
  accessFile: data/access.csv
realtime:
  tripUpdatesURL: https://example.org/tripupdates
  refreshIntervalMS: 5000
departures:
  defaultWindowMinutes: 30
comments:
  file: data/comments.json
  maxPerLine: 5
`)

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "data/gtfs", cfg.GTFS.Dir)
	assert.Equal(t, "https://example.org/tripupdates", cfg.Realtime.TripUpdatesURL)
	assert.Equal(t, 5000, cfg.Realtime.RefreshIntervalMS)
	assert.Equal(t, 30, cfg.Departures.DefaultWindowMinutes)
	assert.Equal(t, 5, cfg.Comments.MaxPerLine)
}

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(writeConfig(t, "gtfs:\n  dir: data/gtfs\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, filepath.Join("data/gtfs", "access.csv"), cfg.GTFS.AccessFile)
	assert.Equal(t, 30000, cfg.Realtime.RefreshIntervalMS)
	assert.Equal(t, 10000, cfg.Realtime.TimeoutMS)
	assert.Equal(t, 60, cfg.Departures.DefaultWindowMinutes)
	assert.Equal(t, 24*60, cfg.Departures.MaxWindowMinutes)
	assert.Equal(t, "data/comments.json", cfg.Comments.File)
	assert.Equal(t, 10, cfg.Comments.MaxPerLine)
}

func TestLoadAppConfigMissingGTFSDir(t *testing.T) {
	_, err := LoadAppConfig(writeConfig(t, "server:\n  port: 8080\n"))
	assert.Error(t, err)
}

func TestLoadAppConfigInvalidURL(t *testing.T) {
	_, err := LoadAppConfig(writeConfig(t, `
gtfs:
  dir: data/gtfs
realtime:
  tripUpdatesURL: not a url
`))
	assert.Error(t, err)
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
