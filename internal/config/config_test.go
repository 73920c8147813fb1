package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/dataset.csv", cfg.Dataset.Path)
	assert.Equal(t, ';', cfg.SeparatorRune())
	assert.Equal(t, uint64(42), cfg.Analysis.Seed)
	assert.Equal(t, 1000, cfg.Analysis.Dorsal)
	assert.Equal(t, "UCSC", cfg.Analysis.Club)
	assert.False(t, cfg.Analysis.FullFolding)
	assert.False(t, cfg.Analysis.ComposeUnicode)
	assert.Equal(t, "img", cfg.Output.ImageDir)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
dataset:
  path: "results.csv"
  separator: ","
analysis:
  club: "HUESCA"
  dorsal: 7
output:
  format: "json"
`)
	t.Setenv("ANALYSIS_DORSAL", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "results.csv", cfg.Dataset.Path)
	assert.Equal(t, ',', cfg.SeparatorRune())
	assert.Equal(t, "HUESCA", cfg.Analysis.Club)
	assert.Equal(t, 12, cfg.Analysis.Dorsal)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 15, cfg.Analysis.PreviewRows)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Dataset:  DatasetConfig{Path: "d.csv", Separator: ";"},
			Analysis: AnalysisConfig{Club: "UCSC"},
			Output:   OutputConfig{Format: "text"},
			Server:   ServerConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty path", func(c *Config) { c.Dataset.Path = "" }, "dataset.path"},
		{"long separator", func(c *Config) { c.Dataset.Separator = ";;" }, "separator"},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"no club", func(c *Config) { c.Analysis.Club = "" }, "analysis.club"},
		{"negative rows", func(c *Config) { c.Analysis.TopClubs = -1 }, "negative"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
