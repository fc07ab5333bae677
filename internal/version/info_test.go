package version

import (
	"bytes"
	"encoding/json"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInfoUsesLinkerValues(t *testing.T) {
	oldV, oldC, oldD := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = oldV, oldC, oldD })

	Version, GitCommit, BuildDate = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"
	info := NewInfo("proofctl")

	assert.Equal(t, "proofctl", info.Name)
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildDate)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.String(), "proofctl version v1.2.3")
}

func TestWithBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Deps: []*debug.Module{
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "github.com/go-git/go-git/v5", Version: "v5.16.1",
				Replace: &debug.Module{Path: "github.com/fork/go-git/v5", Version: "v5.16.2"}},
		},
		Settings: []debug.BuildSetting{{Key: "-tags", Value: "libproof"}},
	}

	info := Info{Name: "proofctl"}.withBuildInfo(bi)
	assert.Equal(t, "libproof", info.BuildTags)
	assert.Equal(t, []string{
		"github.com/go-git/go-git/v5@v5.16.1 => github.com/fork/go-git/v5@v5.16.2",
		"github.com/spf13/cobra@v1.10.2",
	}, info.BuildDeps)
}

func TestCommandOutputs(t *testing.T) {
	for _, args := range [][]string{nil, {"--json"}, {"--long"}} {
		cmd := NewCmd("proofctl")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())

		switch {
		case len(args) == 0:
			assert.Contains(t, out.String(), "proofctl version")
		case args[0] == "--json":
			var decoded Info
			require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
			assert.Equal(t, "proofctl", decoded.Name)
		default:
			var decoded map[string]any
			require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
			assert.Equal(t, "proofctl", decoded["name"])
		}
	}
}
