package gotool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor/executortest"
)

func TestNativeCommandDefaults(t *testing.T) {
	b := NewNativeBuilder(executortest.New(), NativeOptions{GOOS: "linux"}, nil)
	cmd := b.Command("/src/prover", "/out/libproof.a")

	assert.Equal(t, "go", cmd.Name)
	assert.Equal(t, "/src/prover", cmd.Dir)
	assert.Equal(t, []string{
		"build", "-buildmode=c-archive", "-trimpath", "-ldflags=-s -w", "-o", "/out/libproof.a",
	}, cmd.Args)

	cgo, _ := envValue(cmd.Env, "CGO_ENABLED")
	assert.Equal(t, "1", cgo)
	_, ok := envValue(cmd.Env, "MACOSX_DEPLOYMENT_TARGET")
	assert.False(t, ok)
}

func TestNativeCommandDarwinFlags(t *testing.T) {
	t.Setenv("CGO_CFLAGS", "-O2")
	t.Setenv("CGO_LDFLAGS", "")
	b := NewNativeBuilder(executortest.New(), NativeOptions{GOOS: "darwin", MacOSMinVersion: "12.0"}, nil)
	cmd := b.Command("/src", "/out/libproof.a")

	target, _ := envValue(cmd.Env, "MACOSX_DEPLOYMENT_TARGET")
	assert.Equal(t, "12.0", target)
	cflags, _ := envValue(cmd.Env, "CGO_CFLAGS")
	assert.Equal(t, "-O2 -mmacosx-version-min=12.0", cflags)
	ldflags, _ := envValue(cmd.Env, "CGO_LDFLAGS")
	assert.Equal(t, "-mmacosx-version-min=12.0", ldflags)

	if runtime.GOOS != "darwin" {
		goos, _ := envValue(cmd.Env, "GOOS")
		assert.Equal(t, "darwin", goos)
	}
}

func TestNativeBuildSuccess(t *testing.T) {
	out := t.TempDir()
	archive := filepath.Join(out, "libproof.a")
	b := NewNativeBuilder(nil, NativeOptions{GOOS: "linux"}, nil)
	rec := executortest.New()
	rec.Script[b.Command("/src", archive).String()] = executortest.Response{
		Effect: func(cmd executor.Command) error {
			return os.WriteFile(archive, []byte("!<arch>\n"), 0o644)
		},
	}
	b.exec = rec

	require.NoError(t, b.Build(context.Background(), "/src", archive))
	assert.Len(t, rec.Commands, 1)
	assert.FileExists(t, archive)
}

func TestNativeBuildFailureCarriesDiagnostics(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "libproof.a")
	rec := executortest.New()
	b := NewNativeBuilder(rec, NativeOptions{GOOS: "linux"}, nil)
	rec.Script[b.Command("/src", archive).String()] = executortest.Response{
		Output: []byte("./main.go:12:2: undefined: Prove"),
		Err:    errors.New("exit status 1"),
	}

	err := b.Build(context.Background(), "/src", archive)
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "undefined: Prove")
}

func TestNativeBuildMissingArtifact(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "libproof.a")
	rec := executortest.New()

	err := NewNativeBuilder(rec, NativeOptions{GOOS: "linux"}, nil).Build(context.Background(), "/src", archive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive is missing")
}

func TestNativeBuildMissingGo(t *testing.T) {
	rec := executortest.New()
	rec.Missing["go"] = true

	err := NewNativeBuilder(rec, NativeOptions{}, nil).Build(context.Background(), "/src", "/out/libproof.a")
	require.ErrorIs(t, err, ErrToolMissing)
}
