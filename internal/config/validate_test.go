package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *EffectiveConfig)
		wantErr string
	}{
		{"defaults", func(*EffectiveConfig) {}, ""},
		{"depth too small", func(c *EffectiveConfig) { c.MaxDepth.Value = 0 }, "max_depth"},
		{"depth too large", func(c *EffectiveConfig) { c.MaxDepth.Value = 17 }, "max_depth"},
		{"depth upper bound", func(c *EffectiveConfig) { c.MaxDepth.Value = 16 }, ""},
		{"repo ftp", func(c *EffectiveConfig) { c.RepoURL.Value = "ftp://example.com/repo" }, "repo_url"},
		{"repo local path", func(c *EffectiveConfig) { c.RepoURL.Value = "/srv/mirror/l0-prover" }, ""},
		{"ssh https", func(c *EffectiveConfig) { c.SSHURL.Value = "https://github.com/a/b" }, "ssh_url"},
		{"ssh url form", func(c *EffectiveConfig) { c.SSHURL.Value = "ssh://git@github.com/a/b.git" }, ""},
		{"ssh disabled", func(c *EffectiveConfig) { c.SSHURL.Value = "" }, ""},
		{"ssh preferred without url", func(c *EffectiveConfig) {
			c.SSHURL.Value = ""
			c.UseSSH.Value = true
		}, "use_ssh"},
		{"empty branch", func(c *EffectiveConfig) { c.Branch.Value = " " }, "branch"},
		{"branch with dots", func(c *EffectiveConfig) { c.Branch.Value = "a..b" }, "branch"},
		{"nested branch", func(c *EffectiveConfig) { c.Branch.Value = "release/v1" }, ""},
		{"empty goproxy", func(c *EffectiveConfig) { c.GoProxy.Value = "" }, "goproxy"},
		{"ssh command", func(c *EffectiveConfig) { c.GitSSHCommand.Value = "ssh -i ~/.ssh/deploy -o IdentitiesOnly=yes" }, ""},
		{"unterminated quote", func(c *EffectiveConfig) { c.GitSSHCommand.Value = `ssh -i "~/.ssh/deploy` }, "git_ssh_command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEffectiveConfig("/h")
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateFileConfigOnlyChecksSetFields(t *testing.T) {
	assert.NoError(t, ValidateFileConfig(nil))
	assert.NoError(t, ValidateFileConfig(&FileConfig{}))
	assert.NoError(t, ValidateFileConfig(&FileConfig{SSHURL: ptr("")}))

	err := ValidateFileConfig(&FileConfig{Branch: ptr("")})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "in config file")
	}
}
