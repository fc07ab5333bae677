package repo

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Remote performs the network side of acquisition.
type Remote interface {
	// Clone makes a shallow, single-branch clone of url into dest.
	Clone(ctx context.Context, t Transport, url, branch, dest string) error

	// ProbeSSH checks that SSH authentication against url works.
	ProbeSSH(ctx context.Context, url string) error
}

// GoGitRemote implements Remote with go-git.
type GoGitRemote struct {
	// CredentialCommand is an ssh command line whose -i flag selects the key.
	CredentialCommand string
	// Progress receives clone progress; nil discards it.
	Progress io.Writer
}

// Clone implements Remote.
func (r *GoGitRemote) Clone(ctx context.Context, t Transport, url, branch, dest string) error {
	auth, err := r.auth(t)
	if err != nil {
		return err
	}
	_, err = git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:           url,
		Auth:          auth,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Progress:      r.Progress,
	})
	return err
}

// ProbeSSH lists remote refs over SSH without touching the filesystem.
func (r *GoGitRemote) ProbeSSH(ctx context.Context, url string) error {
	auth, err := r.auth(TransportSSH)
	if err != nil {
		return err
	}
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	if _, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth}); err != nil {
		return fmt.Errorf("ssh probe failed: %w", err)
	}
	return nil
}

func (r *GoGitRemote) auth(t Transport) (transport.AuthMethod, error) {
	if t == TransportSSH {
		return sshAuth(r.CredentialCommand)
	}
	return httpsAuth(), nil
}
