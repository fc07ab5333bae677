package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSource = Source{
	HTTPSURL: "https://example.com/prover.git",
	SSHURL:   "git@example.com:prover.git",
	Branch:   "main",
}

type cloneCall struct {
	transport Transport
	url       string
	branch    string
}

type fakeRemote struct {
	t         *testing.T
	probeErr  error
	cloneErrs map[Transport]error
	partial   bool // leave a broken directory behind on failure
	clones    []cloneCall
	probes    int
}

func (f *fakeRemote) Clone(_ context.Context, tr Transport, url, branch, dest string) error {
	f.clones = append(f.clones, cloneCall{tr, url, branch})
	if err := f.cloneErrs[tr]; err != nil {
		if f.partial {
			require.NoError(f.t, os.MkdirAll(filepath.Join(dest, ".git"), 0o755))
		}
		return err
	}
	initRepo(f.t, dest)
	return nil
}

func (f *fakeRemote) ProbeSSH(context.Context, string) error {
	f.probes++
	return f.probeErr
}

func initRepo(t *testing.T, dir string) string {
	t.Helper()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestAcquireReusesExistingClone(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	commit := initRepo(t, dest)
	remote := &fakeRemote{t: t}

	state, err := NewAcquirer(testSource, remote, false, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.True(t, state.Reused)
	assert.Equal(t, TransportExisting, state.Transport)
	assert.Equal(t, commit, state.Commit)
	assert.Empty(t, remote.clones)
	assert.Zero(t, remote.probes)
}

func TestAcquireReplacesIncompleteClone(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	require.NoError(t, os.MkdirAll(filepath.Join(dest, ".git"), 0o755))
	remote := &fakeRemote{t: t, probeErr: errors.New("no agent")}

	state, err := NewAcquirer(testSource, remote, false, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.False(t, state.Reused)
	assert.Equal(t, TransportHTTPS, state.Transport)
	assert.NotEmpty(t, state.Commit)
	require.Len(t, remote.clones, 1)
}

func TestAcquireProbeSelectsSSH(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{t: t}

	state, err := NewAcquirer(testSource, remote, false, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.Equal(t, TransportSSH, state.Transport)
	assert.Equal(t, 1, remote.probes)
	require.Len(t, remote.clones, 1)
	assert.Equal(t, cloneCall{TransportSSH, testSource.SSHURL, "main"}, remote.clones[0])
}

func TestAcquireProbeFailureUsesHTTPS(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{t: t, probeErr: errors.New("permission denied (publickey)")}

	state, err := NewAcquirer(testSource, remote, false, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.Equal(t, TransportHTTPS, state.Transport)
	require.Len(t, remote.clones, 1)
	assert.Equal(t, cloneCall{TransportHTTPS, testSource.HTTPSURL, "main"}, remote.clones[0])
}

func TestAcquirePreferSSHSkipsProbe(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{t: t, probeErr: errors.New("unreachable")}

	state, err := NewAcquirer(testSource, remote, true, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.Equal(t, TransportSSH, state.Transport)
	assert.Zero(t, remote.probes)
}

func TestAcquireSSHFailureFallsBackOnce(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{
		t:         t,
		partial:   true,
		cloneErrs: map[Transport]error{TransportSSH: errors.New("host key mismatch")},
	}

	state, err := NewAcquirer(testSource, remote, true, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)

	assert.Equal(t, TransportHTTPS, state.Transport)
	require.Len(t, remote.clones, 2)
	assert.Equal(t, TransportSSH, remote.clones[0].transport)
	assert.Equal(t, TransportHTTPS, remote.clones[1].transport)
}

func TestAcquireHTTPSFailureIsFatal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{
		t:         t,
		partial:   true,
		probeErr:  errors.New("no ssh"),
		cloneErrs: map[Transport]error{TransportHTTPS: errors.New("503")},
	}

	_, err := NewAcquirer(testSource, remote, false, nil).Acquire(context.Background(), dest)
	require.ErrorIs(t, err, ErrCloneFailed)
	assert.Contains(t, err.Error(), "503")
	assert.Len(t, remote.clones, 1)
	assert.NoDirExists(t, dest)
}

func TestAcquireBothTransportsFail(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{
		t: t,
		cloneErrs: map[Transport]error{
			TransportSSH:   errors.New("ssh down"),
			TransportHTTPS: errors.New("https down"),
		},
	}

	_, err := NewAcquirer(testSource, remote, true, nil).Acquire(context.Background(), dest)
	require.ErrorIs(t, err, ErrCloneFailed)
	assert.Len(t, remote.clones, 2)
}

func TestAcquireWithoutSSHURLNeverProbes(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "l0-prover")
	remote := &fakeRemote{t: t}
	src := testSource
	src.SSHURL = ""

	state, err := NewAcquirer(src, remote, false, nil).Acquire(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, TransportHTTPS, state.Transport)
	assert.Zero(t, remote.probes)
}
