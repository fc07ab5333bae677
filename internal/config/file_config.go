package config

// FileConfig represents the raw proof.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	Home    *string `toml:"home"`
	NoColor *bool   `toml:"no_color"`
	Verbose *bool   `toml:"verbose"`

	// Build output
	OutDir *string `toml:"out_dir"`

	// Source repository
	RepoURL *string `toml:"repo_url"`
	SSHURL  *string `toml:"ssh_url"` // Empty string disables SSH
	Branch  *string `toml:"branch"`
	UseSSH  *bool   `toml:"use_ssh"`

	// Toolchain
	GoProxy         *string `toml:"goproxy"`
	GitSSHCommand   *string `toml:"git_ssh_command"`
	MaxDepth        *int    `toml:"max_depth"`
	MacOSMinVersion *string `toml:"macos_min_version"`
}

// knownKeys lists the proof.toml keys understood by FileConfig.
var knownKeys = map[string]bool{
	"home":              true,
	"no_color":          true,
	"verbose":           true,
	"out_dir":           true,
	"repo_url":          true,
	"ssh_url":           true,
	"branch":            true,
	"use_ssh":           true,
	"goproxy":           true,
	"git_ssh_command":   true,
	"max_depth":         true,
	"macos_min_version": true,
}
