package gotool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
)

// DefaultStripFlags drop the symbol table and DWARF data from the archive.
const DefaultStripFlags = "-s -w"

// DefaultMacOSMinVersion is the deployment target applied to darwin builds.
const DefaultMacOSMinVersion = "11.0"

// NativeOptions configures the archive build.
type NativeOptions struct {
	GOOS            string // target OS; empty means runtime.GOOS
	MacOSMinVersion string // empty means DefaultMacOSMinVersion
	LDFlags         string // empty means DefaultStripFlags
}

// NativeBuilder compiles the entry package with -buildmode=c-archive.
type NativeBuilder struct {
	exec   executor.CommandExecutor
	opts   NativeOptions
	logger *slog.Logger
}

// NewNativeBuilder creates a NativeBuilder.
func NewNativeBuilder(exec executor.CommandExecutor, opts NativeOptions, logger *slog.Logger) *NativeBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.MacOSMinVersion == "" {
		opts.MacOSMinVersion = DefaultMacOSMinVersion
	}
	if opts.LDFlags == "" {
		opts.LDFlags = DefaultStripFlags
	}
	return &NativeBuilder{exec: exec, opts: opts, logger: logger}
}

// Command returns the go build invocation for the given entry dir and archive.
func (b *NativeBuilder) Command(entryDir, archivePath string) executor.Command {
	env := []string{"CGO_ENABLED=1"}
	if b.opts.GOOS != runtime.GOOS {
		env = append(env, "GOOS="+b.opts.GOOS)
	}
	if b.opts.GOOS == "darwin" {
		minFlag := "-mmacosx-version-min=" + b.opts.MacOSMinVersion
		env = append(env,
			"MACOSX_DEPLOYMENT_TARGET="+b.opts.MacOSMinVersion,
			"CGO_CFLAGS="+joinFlags(os.Getenv("CGO_CFLAGS"), minFlag),
			"CGO_LDFLAGS="+joinFlags(os.Getenv("CGO_LDFLAGS"), minFlag),
		)
	}

	return executor.Command{
		Name: "go",
		Args: []string{
			"build",
			"-buildmode=c-archive",
			"-trimpath",
			"-ldflags=" + b.opts.LDFlags,
			"-o", archivePath,
		},
		Dir: entryDir,
		Env: env,
	}
}

// Build compiles entryDir into archivePath. Any non-zero exit is returned
// with the compiler output attached.
func (b *NativeBuilder) Build(ctx context.Context, entryDir, archivePath string) error {
	if _, err := b.exec.LookPath("go"); err != nil {
		return fmt.Errorf("%w: %v", ErrToolMissing, err)
	}

	cmd := b.Command(entryDir, archivePath)
	b.logger.Info("building static archive", "dir", entryDir, "output", archivePath, "goos", b.opts.GOOS)
	b.logger.Debug("running", "cmd", cmd.String(), "env", cmd.Env)

	out, err := b.exec.Run(ctx, cmd)
	if err != nil {
		return newCommandError(cmd, out, err)
	}
	if _, err := os.Stat(archivePath); err != nil {
		return fmt.Errorf("build reported success but archive is missing: %w", err)
	}
	return nil
}

func joinFlags(existing, flag string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return flag
	}
	return existing + " " + flag
}
