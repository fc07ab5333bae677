package config

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Environment variables read by ApplyEnv.
const (
	EnvUseSSH        = "PROOF_USE_SSH"
	EnvGoProxy       = "PROOF_GOPROXY"
	EnvGitSSHCommand = "PROOF_GIT_SSH_COMMAND"
	EnvOutDir        = "PROOF_OUT_DIR"
	EnvNoColor       = "NO_COLOR"
)

// ApplyFile overlays values present in the config file.
func (c *EffectiveConfig) ApplyFile(f *FileConfig, path string) {
	if f == nil {
		return
	}
	c.ConfigFilePath = path
	applyFileString(&c.Home, f.Home)
	applyFileBool(&c.NoColor, f.NoColor)
	applyFileBool(&c.Verbose, f.Verbose)
	applyFileString(&c.OutDir, f.OutDir)
	applyFileString(&c.RepoURL, f.RepoURL)
	applyFileString(&c.SSHURL, f.SSHURL)
	applyFileString(&c.Branch, f.Branch)
	applyFileBool(&c.UseSSH, f.UseSSH)
	applyFileString(&c.GoProxy, f.GoProxy)
	applyFileString(&c.GitSSHCommand, f.GitSSHCommand)
	if f.MaxDepth != nil {
		c.MaxDepth.set(*f.MaxDepth, SourceConfigFile)
	}
	applyFileString(&c.MacOSMinVersion, f.MacOSMinVersion)
}

// ApplyEnv overlays values from the environment. getenv is usually os.Getenv.
// PROOF_USE_SSH accepts strconv.ParseBool values; any other non-empty value
// counts as true. NO_COLOR follows no-color.org: any non-empty value disables colour.
func (c *EffectiveConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvUseSSH); v != "" {
		c.UseSSH.set(envBool(v), SourceEnvironment)
	}
	if v := getenv(EnvGoProxy); v != "" {
		c.GoProxy.set(v, SourceEnvironment)
	}
	if v := getenv(EnvGitSSHCommand); v != "" {
		c.GitSSHCommand.set(v, SourceEnvironment)
	}
	if v := getenv(EnvOutDir); v != "" {
		c.OutDir.set(v, SourceEnvironment)
	}
	if getenv(EnvNoColor) != "" {
		c.NoColor.set(true, SourceEnvironment)
	}
}

func envBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return true
	}
	return b
}

func applyFileString(v *StringValue, p *string) {
	if p != nil {
		v.set(*p, SourceConfigFile)
	}
}

func applyFileBool(v *BoolValue, p *bool) {
	if p != nil {
		v.set(*p, SourceConfigFile)
	}
}

// ApplyStringFlag applies a flag value if it was explicitly set on the command line.
func ApplyStringFlag(cmd *cobra.Command, flagName string, v *StringValue) {
	if !cmd.Flags().Changed(flagName) {
		return
	}
	if s, err := cmd.Flags().GetString(flagName); err == nil {
		v.set(s, SourceFlag)
	}
}

// ApplyIntFlag applies a flag value if it was explicitly set on the command line.
func ApplyIntFlag(cmd *cobra.Command, flagName string, v *IntValue) {
	if !cmd.Flags().Changed(flagName) {
		return
	}
	if n, err := cmd.Flags().GetInt(flagName); err == nil {
		v.set(n, SourceFlag)
	}
}

// ApplyBoolFlag applies a flag value if it was explicitly set on the command line.
// An unchanged false flag never overrides a true value from the file or environment.
func ApplyBoolFlag(cmd *cobra.Command, flagName string, v *BoolValue) {
	if !cmd.Flags().Changed(flagName) {
		return
	}
	if b, err := cmd.Flags().GetBool(flagName); err == nil {
		v.set(b, SourceFlag)
	}
}
