package config

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/gotool"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/locator"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// Default source repository.
const (
	DefaultRepoURL = "https://github.com/theparadigmshifters/l0-prover"
	DefaultSSHURL  = "git@github.com:theparadigmshifters/l0-prover.git"
	DefaultBranch  = "main"
)

// EffectiveConfig represents the final merged configuration after applying priority chain.
type EffectiveConfig struct {
	// Global settings
	Home    StringValue
	NoColor BoolValue
	Verbose BoolValue

	OutDir StringValue // Empty means <home>/out

	RepoURL StringValue
	SSHURL  StringValue
	Branch  StringValue
	UseSSH  BoolValue

	GoProxy         StringValue
	GitSSHCommand   StringValue
	MaxDepth        IntValue
	MacOSMinVersion StringValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig(defaultHomeDir string) *EffectiveConfig {
	return &EffectiveConfig{
		Home:            NewStringValue(defaultHomeDir),
		NoColor:         NewBoolValue(false),
		Verbose:         NewBoolValue(false),
		OutDir:          NewStringValue(""),
		RepoURL:         NewStringValue(DefaultRepoURL),
		SSHURL:          NewStringValue(DefaultSSHURL),
		Branch:          NewStringValue(DefaultBranch),
		UseSSH:          NewBoolValue(false),
		GoProxy:         NewStringValue(gotool.DefaultGoProxy),
		GitSSHCommand:   NewStringValue(""),
		MaxDepth:        NewIntValue(locator.DefaultMaxDepth),
		MacOSMinVersion: NewStringValue(gotool.DefaultMacOSMinVersion),
	}
}

// ResolvedOutDir returns the build output directory.
func (c *EffectiveConfig) ResolvedOutDir() string {
	if c.OutDir.Value != "" {
		return c.OutDir.Value
	}
	return paths.DefaultOutDir(c.Home.Value)
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "home\t%s\t%s\n", c.Home.Value, c.Home.Source)
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "out_dir\t%s\t%s\n", c.ResolvedOutDir(), c.OutDir.Source)
	fmt.Fprintf(tw, "repo_url\t%s\t%s\n", c.RepoURL.Value, c.RepoURL.Source)
	fmt.Fprintf(tw, "ssh_url\t%s\t%s\n", orNotSet(c.SSHURL.Value), c.SSHURL.Source)
	fmt.Fprintf(tw, "branch\t%s\t%s\n", c.Branch.Value, c.Branch.Source)
	fmt.Fprintf(tw, "use_ssh\t%t\t%s\n", c.UseSSH.Value, c.UseSSH.Source)
	fmt.Fprintf(tw, "goproxy\t%s\t%s\n", c.GoProxy.Value, c.GoProxy.Source)
	fmt.Fprintf(tw, "git_ssh_command\t%s\t%s\n", orNotSet(c.GitSSHCommand.Value), c.GitSSHCommand.Source)
	fmt.Fprintf(tw, "max_depth\t%d\t%s\n", c.MaxDepth.Value, c.MaxDepth.Source)
	fmt.Fprintf(tw, "macos_min_version\t%s\t%s\n", c.MacOSMinVersion.Value, c.MacOSMinVersion.Source)
	tw.Flush()
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
