package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/proof-bridge/internal/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestLoader(home, workDir, explicit string) (*ConfigLoader, *bytes.Buffer) {
	var errOut bytes.Buffer
	l := NewConfigLoader(home, explicit, output.NewLoggerWithWriters(&bytes.Buffer{}, &errOut))
	l.workDir = workDir
	return l, &errOut
}

func TestLoadFileConfigNoFiles(t *testing.T) {
	l, _ := newTestLoader(t.TempDir(), t.TempDir(), "")

	cfg, path, err := l.LoadFileConfig()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestLoadFileConfigMergesInPriorityOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	explicit := filepath.Join(t.TempDir(), "custom.toml")

	writeFile(t, filepath.Join(home, "proof.toml"), `
branch = "home-branch"
goproxy = "https://home.example"
max_depth = 5
`)
	writeFile(t, filepath.Join(work, "proof.toml"), `
branch = "local-branch"
use_ssh = true
`)
	writeFile(t, explicit, `
branch = "explicit-branch"
`)

	l, _ := newTestLoader(home, work, explicit)
	cfg, path, err := l.LoadFileConfig()
	require.NoError(t, err)

	assert.Equal(t, explicit, path)
	require.NotNil(t, cfg.Branch)
	assert.Equal(t, "explicit-branch", *cfg.Branch)
	require.NotNil(t, cfg.UseSSH)
	assert.True(t, *cfg.UseSSH)
	require.NotNil(t, cfg.GoProxy)
	assert.Equal(t, "https://home.example", *cfg.GoProxy)
	require.NotNil(t, cfg.MaxDepth)
	assert.Equal(t, 5, *cfg.MaxDepth)
}

func TestLoadFileConfigExplicitMissing(t *testing.T) {
	l, _ := newTestLoader(t.TempDir(), t.TempDir(), "/nonexistent/proof.toml")

	_, _, err := l.LoadFileConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadFileConfigParseError(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "proof.toml"), "branch = \n")

	l, _ := newTestLoader(home, t.TempDir(), "")
	_, _, err := l.LoadFileConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFileConfigValidates(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "proof.toml"), "max_depth = 40\n")

	l, _ := newTestLoader(home, t.TempDir(), "")
	_, _, err := l.LoadFileConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestLoadFileConfigWarnsUnknownKeys(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "proof.toml"), "branch = \"main\"\nbranchh = \"typo\"\n")

	l, errOut := newTestLoader(home, t.TempDir(), "")
	_, _, err := l.LoadFileConfig()
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), `Unknown config key "branchh"`)
}

func TestLoadFileConfigSameFileOnce(t *testing.T) {
	home := t.TempDir()
	homeFile := filepath.Join(home, "proof.toml")
	writeFile(t, homeFile, "branch = \"dev\"\n")

	l, _ := newTestLoader(home, home, homeFile)
	cfg, path, err := l.LoadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, homeFile, path)
	assert.Equal(t, "dev", *cfg.Branch)
}
