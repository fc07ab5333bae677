// Package repo makes sure a local copy of the foreign source tree exists.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
)

// ErrCloneFailed is returned when every attempted transport failed.
var ErrCloneFailed = errors.New("clone failed")

// Transport identifies how the source tree was obtained.
type Transport string

const (
	TransportSSH      Transport = "ssh"
	TransportHTTPS    Transport = "https"
	TransportExisting Transport = "existing"
)

// DefaultProbeTimeout bounds the SSH authentication probe.
const DefaultProbeTimeout = 10 * time.Second

// Source describes the remote repository in both transport variants.
type Source struct {
	HTTPSURL string
	SSHURL   string
	Branch   string
}

// State is the outcome of an acquisition.
type State struct {
	Path      string
	Reused    bool
	Transport Transport
	Commit    string // HEAD commit hash, empty if it could not be read
}

// Acquirer guarantees a usable local clone or fails.
type Acquirer struct {
	source       Source
	remote       Remote
	preferSSH    bool
	probeTimeout time.Duration
	logger       *slog.Logger
}

// NewAcquirer creates an Acquirer. preferSSH skips the probe and goes
// straight to SSH.
func NewAcquirer(source Source, remote Remote, preferSSH bool, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		source:       source,
		remote:       remote,
		preferSSH:    preferSSH,
		probeTimeout: DefaultProbeTimeout,
		logger:       logger,
	}
}

// Acquire ensures dest holds a clone of the source. An existing repository
// with a readable HEAD is reused as is; anything else at dest is treated as
// an interrupted clone and replaced.
func (a *Acquirer) Acquire(ctx context.Context, dest string) (State, error) {
	if _, err := os.Stat(dest); err == nil {
		if commit, ok := headCommit(dest); ok {
			a.logger.Debug("reusing existing clone", "path", dest, "commit", commit)
			return State{Path: dest, Reused: true, Transport: TransportExisting, Commit: commit}, nil
		}
		a.logger.Warn("existing directory is not a complete clone, re-cloning", "path", dest)
		if err := os.RemoveAll(dest); err != nil {
			return State{}, fmt.Errorf("failed to remove incomplete clone: %w", err)
		}
	}

	if a.selectTransport(ctx) == TransportSSH {
		a.logger.Info("cloning repository", "url", a.source.SSHURL, "branch", a.source.Branch, "transport", TransportSSH)
		err := a.remote.Clone(ctx, TransportSSH, a.source.SSHURL, a.source.Branch, dest)
		if err == nil {
			return a.cloned(dest, TransportSSH), nil
		}
		a.logger.Warn("ssh clone failed, falling back to https", "error", err)
		_ = os.RemoveAll(dest)
	}

	a.logger.Info("cloning repository", "url", a.source.HTTPSURL, "branch", a.source.Branch, "transport", TransportHTTPS)
	if err := a.remote.Clone(ctx, TransportHTTPS, a.source.HTTPSURL, a.source.Branch, dest); err != nil {
		_ = os.RemoveAll(dest)
		return State{}, fmt.Errorf("%w: %s (branch %s): %v", ErrCloneFailed, a.source.HTTPSURL, a.source.Branch, err)
	}
	return a.cloned(dest, TransportHTTPS), nil
}

func (a *Acquirer) selectTransport(ctx context.Context) Transport {
	if a.preferSSH {
		a.logger.Debug("ssh transport requested")
		return TransportSSH
	}
	if a.source.SSHURL == "" {
		return TransportHTTPS
	}

	probeCtx, cancel := context.WithTimeout(ctx, a.probeTimeout)
	defer cancel()
	if err := a.remote.ProbeSSH(probeCtx, a.source.SSHURL); err != nil {
		a.logger.Debug("ssh probe failed, using https", "error", err)
		return TransportHTTPS
	}
	return TransportSSH
}

func (a *Acquirer) cloned(dest string, t Transport) State {
	commit, _ := headCommit(dest)
	a.logger.Debug("clone complete", "path", dest, "transport", t, "commit", commit)
	return State{Path: dest, Transport: t, Commit: commit}
}

// headCommit returns the HEAD hash when dir is a repository with at least one commit.
func headCommit(dir string) (string, bool) {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return "", false
	}
	head, err := r.Head()
	if err != nil {
		return "", false
	}
	return head.Hash().String(), true
}
