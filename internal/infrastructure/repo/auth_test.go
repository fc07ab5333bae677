package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromCommand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"empty", "", ""},
		{"no identity", "ssh -o StrictHostKeyChecking=no", ""},
		{"separate flag", "ssh -i /keys/deploy -o IdentitiesOnly=yes", "/keys/deploy"},
		{"joined flag", "ssh -i/keys/deploy", "/keys/deploy"},
		{"quoted path", `ssh -i "/keys/my key"`, "/keys/my key"},
		{"home path", "ssh -i ~/.ssh/ci", filepath.Join(home, ".ssh", "ci")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IdentityFromCommand(tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityFromCommandRejectsBrokenQuoting(t *testing.T) {
	_, err := IdentityFromCommand(`ssh -i "/keys/unterminated`)
	assert.Error(t, err)
}

func TestHTTPSAuthFromToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")
	assert.Nil(t, httpsAuth())

	t.Setenv("GIT_TOKEN", "secret")
	assert.NotNil(t, httpsAuth())
}
