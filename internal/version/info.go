// Package version provides version information and the version command for proofctl.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"sort"
	"strings"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables injected via ldflags:
//
//	-X github.com/altuslabsxyz/proof-bridge/internal/version.Version={{.Version}}
//	-X github.com/altuslabsxyz/proof-bridge/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/altuslabsxyz/proof-bridge/internal/version.BuildDate={{.Date}}
//
// Unset values fall back to the module build info.
var (
	Version   = ""
	GitCommit = ""
	BuildDate = ""
)

const (
	description = "Builds the l0 prover into a static archive and bridges proof requests"
	projectURL  = "https://github.com/altuslabsxyz/proof-bridge"
)

// Info contains all version and build information.
type Info struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	GitCommit string   `json:"commit" yaml:"commit"`
	TreeState string   `json:"tree_state,omitempty" yaml:"tree_state,omitempty"`
	BuildDate string   `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string   `json:"go" yaml:"go"`
	Platform  string   `json:"platform" yaml:"platform"`
	BuildTags string   `json:"build_tags,omitempty" yaml:"build_tags,omitempty"`
	BuildDeps []string `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// NewInfo creates a new Info struct for the given app name.
func NewInfo(name string) Info {
	v := goversion.GetVersionInfo(
		goversion.WithAppDetails(name, description, projectURL),
		func(i *goversion.Info) {
			if Version != "" {
				i.GitVersion = Version
			}
			if GitCommit != "" {
				i.GitCommit = GitCommit
			}
			if BuildDate != "" {
				i.BuildDate = BuildDate
			}
		},
	)
	return Info{
		Name:      name,
		Version:   v.GitVersion,
		GitCommit: v.GitCommit,
		TreeState: v.GitTreeState,
		BuildDate: v.BuildDate,
		GoVersion: v.GoVersion,
		Platform:  v.Platform,
	}
}

// WithBuildDeps populates the build tags and dependencies from runtime/debug.
func (i Info) WithBuildDeps() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	return i.withBuildInfo(buildInfo)
}

func (i Info) withBuildInfo(buildInfo *debug.BuildInfo) Info {
	var buildTags []string
	for _, setting := range buildInfo.Settings {
		if setting.Key == "-tags" && setting.Value != "" {
			buildTags = append(buildTags, setting.Value)
		}
	}
	if len(buildTags) > 0 {
		i.BuildTags = strings.Join(buildTags, ",")
	}

	deps := make([]string, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		depStr := fmt.Sprintf("%s@%s", dep.Path, dep.Version)
		if dep.Replace != nil {
			depStr = fmt.Sprintf("%s@%s => %s@%s", dep.Path, dep.Version, dep.Replace.Path, dep.Replace.Version)
		}
		deps = append(deps, depStr)
	}
	sort.Strings(deps)
	i.BuildDeps = deps
	return i
}

// String returns a formatted string representation of the version info.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s version %s\n", i.Name, i.Version)
	fmt.Fprintf(&sb, "  commit:     %s\n", i.GitCommit)
	fmt.Fprintf(&sb, "  build date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  go:         %s %s\n", i.GoVersion, i.Platform)
	return sb.String()
}

// LongString returns a detailed YAML-formatted string including build dependencies.
func (i Info) LongString() string {
	data, err := yaml.Marshal(i)
	if err != nil {
		return i.String()
	}
	return string(data)
}

// JSON returns the version info as a JSON string.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewCmd creates a version command for the given app name.
// The command supports:
//   - --long: Show detailed version info including build dependencies
//   - --json: Output in JSON format
func NewCmd(name string) *cobra.Command {
	var (
		long       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information including build details. Use --long for detailed dependency info.",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := NewInfo(name)
			if long {
				info = info.WithBuildDeps()
			}
			return write(cmd.OutOrStdout(), info, long, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Show detailed version info including build dependencies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info in JSON format")

	return cmd
}

func write(w io.Writer, info Info, long, jsonOutput bool) error {
	if jsonOutput {
		out, err := info.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	if long {
		_, err := io.WriteString(w, info.LongString())
		return err
	}
	_, err := io.WriteString(w, info.String())
	return err
}
