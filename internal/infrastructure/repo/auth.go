package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"mvdan.cc/sh/v3/shell"
)

// errNoSSHCredentials means no key file, identity override or agent was found.
var errNoSSHCredentials = errors.New("no SSH credentials available")

// IdentityFromCommand extracts the identity file passed with -i from an ssh
// command line such as "ssh -i ~/.ssh/deploy_key -o IdentitiesOnly=yes".
// It returns "" when the command sets no identity.
func IdentityFromCommand(command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", nil
	}
	fields, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return "", fmt.Errorf("invalid ssh command %q: %w", command, err)
	}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		switch {
		case f == "-i" && i+1 < len(fields):
			return expandHome(fields[i+1]), nil
		case strings.HasPrefix(f, "-i") && len(f) > 2:
			return expandHome(f[2:]), nil
		}
	}
	return "", nil
}

func expandHome(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}

// sshAuth resolves SSH credentials in order: identity from the credential
// command, running ssh-agent, common key files.
func sshAuth(credentialCommand string) (transport.AuthMethod, error) {
	identity, err := IdentityFromCommand(credentialCommand)
	if err != nil {
		return nil, err
	}
	if identity != "" {
		return ssh.NewPublicKeysFromFile("git", identity, "")
	}

	if os.Getenv("SSH_AUTH_SOCK") != "" {
		if auth, err := ssh.NewSSHAgentAuth("git"); err == nil {
			return auth, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errNoSSHCredentials
	}
	for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
		keyPath := filepath.Join(homeDir, ".ssh", name)
		if _, err := os.Stat(keyPath); err != nil {
			continue
		}
		if auth, err := ssh.NewPublicKeysFromFile("git", keyPath, ""); err == nil {
			return auth, nil
		}
	}
	return nil, errNoSSHCredentials
}

// httpsAuth returns token auth when GITHUB_TOKEN or GIT_TOKEN is set, nil otherwise.
func httpsAuth() transport.AuthMethod {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "x-access-token", Password: token}
	}
	if token := os.Getenv("GIT_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "git", Password: token}
	}
	return nil
}
