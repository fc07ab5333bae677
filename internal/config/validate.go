package config

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"mvdan.cc/sh/v3/shell"
)

// Bounds for max_depth.
const (
	MinMaxDepth = 1
	MaxMaxDepth = 16
)

// Validate validates the EffectiveConfig values against allowed ranges and types.
func (c *EffectiveConfig) Validate() error {
	if err := validateDepth(c.MaxDepth.Value); err != nil {
		return err
	}
	if err := validateRepoURL(c.RepoURL.Value); err != nil {
		return err
	}
	if c.SSHURL.Value != "" {
		if err := validateSSHURL(c.SSHURL.Value); err != nil {
			return err
		}
	}
	if c.UseSSH.Value && c.SSHURL.Value == "" {
		return fmt.Errorf("use_ssh is set but ssh_url is empty")
	}
	if err := validateBranch(c.Branch.Value); err != nil {
		return err
	}
	if c.GoProxy.Value == "" {
		return fmt.Errorf("invalid goproxy: must not be empty")
	}
	if c.GitSSHCommand.Value != "" {
		if err := validateCommand(c.GitSSHCommand.Value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.MaxDepth != nil {
		if err := validateDepth(*cfg.MaxDepth); err != nil {
			return fmt.Errorf("%w (in config file)", err)
		}
	}
	if cfg.RepoURL != nil {
		if err := validateRepoURL(*cfg.RepoURL); err != nil {
			return fmt.Errorf("%w (in config file)", err)
		}
	}
	if cfg.SSHURL != nil && *cfg.SSHURL != "" {
		if err := validateSSHURL(*cfg.SSHURL); err != nil {
			return fmt.Errorf("%w (in config file)", err)
		}
	}
	if cfg.Branch != nil {
		if err := validateBranch(*cfg.Branch); err != nil {
			return fmt.Errorf("%w (in config file)", err)
		}
	}
	if cfg.GitSSHCommand != nil && *cfg.GitSSHCommand != "" {
		if err := validateCommand(*cfg.GitSSHCommand); err != nil {
			return fmt.Errorf("%w (in config file)", err)
		}
	}
	return nil
}

func validateDepth(d int) error {
	if d < MinMaxDepth || d > MaxMaxDepth {
		return fmt.Errorf("invalid max_depth: %d (must be %d-%d)", d, MinMaxDepth, MaxMaxDepth)
	}
	return nil
}

func validateRepoURL(u string) error {
	ep, err := transport.NewEndpoint(u)
	if err != nil {
		return fmt.Errorf("invalid repo_url %q: %w", u, err)
	}
	switch ep.Protocol {
	case "https", "http", "file":
		return nil
	}
	return fmt.Errorf("invalid repo_url %q: protocol %q (must be https, http or file)", u, ep.Protocol)
}

func validateSSHURL(u string) error {
	ep, err := transport.NewEndpoint(u)
	if err != nil {
		return fmt.Errorf("invalid ssh_url %q: %w", u, err)
	}
	if ep.Protocol != "ssh" {
		return fmt.Errorf("invalid ssh_url %q: protocol %q (must be ssh)", u, ep.Protocol)
	}
	return nil
}

func validateBranch(b string) error {
	switch {
	case strings.TrimSpace(b) == "":
		return fmt.Errorf("invalid branch: must not be empty")
	case strings.ContainsAny(b, " \t~^:?*[\\"), strings.Contains(b, ".."),
		strings.HasPrefix(b, "-"), strings.HasPrefix(b, "/"), strings.HasSuffix(b, "/"):
		return fmt.Errorf("invalid branch: %q", b)
	}
	return nil
}

func validateCommand(command string) error {
	fields, err := shell.Fields(command, func(string) string { return "" })
	if err != nil {
		return fmt.Errorf("invalid git_ssh_command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return fmt.Errorf("invalid git_ssh_command %q: no command", command)
	}
	return nil
}
