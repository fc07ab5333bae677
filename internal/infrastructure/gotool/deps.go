// Package gotool drives the Go toolchain against the foreign module: it
// materializes the module's dependencies and compiles it into a C archive.
package gotool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// DefaultGoProxy is used when no proxy override is configured.
const DefaultGoProxy = "https://proxy.golang.org,direct"

// ModuleInfo is what the resolver learned from the module manifest.
type ModuleInfo struct {
	Dir       string // directory holding go.mod (or the entry dir as fallback)
	Path      string // module path, empty if go.mod could not be parsed
	GoVersion string // go directive
	Toolchain string // toolchain directive, e.g. go1.23.4
}

// ResolverOptions configures dependency fetching.
type ResolverOptions struct {
	GoProxy           string // empty means DefaultGoProxy
	CredentialCommand string // exported as GIT_SSH_COMMAND when set
}

// Resolver downloads and reconciles the module's dependencies.
type Resolver struct {
	exec   executor.CommandExecutor
	opts   ResolverOptions
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(exec executor.CommandExecutor, opts ResolverOptions, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{exec: exec, opts: opts, logger: logger}
}

// ManifestDir returns entryDir if it holds go.mod, else its parent if that
// does, else entryDir.
func ManifestDir(entryDir string) string {
	if fileExists(filepath.Join(entryDir, paths.ModuleManifest)) {
		return entryDir
	}
	parent := filepath.Dir(entryDir)
	if parent != entryDir && fileExists(filepath.Join(parent, paths.ModuleManifest)) {
		return parent
	}
	return entryDir
}

// ReadModule parses go.mod in dir. A missing manifest yields only Dir.
func ReadModule(dir string) (ModuleInfo, error) {
	info := ModuleInfo{Dir: dir}
	manifest := filepath.Join(dir, paths.ModuleManifest)
	data, err := os.ReadFile(manifest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return info, nil
		}
		return info, fmt.Errorf("failed to read %s: %w", manifest, err)
	}

	f, err := modfile.Parse(manifest, data, nil)
	if err != nil {
		return info, fmt.Errorf("failed to parse %s: %w", manifest, err)
	}
	if f.Module != nil {
		info.Path = f.Module.Mod.Path
	}
	if f.Go != nil {
		info.GoVersion = f.Go.Version
	}
	if f.Toolchain != nil {
		info.Toolchain = f.Toolchain.Name
	}
	return info, nil
}

// Resolve runs "go mod download" then "go mod tidy" in the manifest
// directory. Both must succeed.
func (r *Resolver) Resolve(ctx context.Context, entryDir string) (ModuleInfo, error) {
	if _, err := r.exec.LookPath("go"); err != nil {
		return ModuleInfo{}, fmt.Errorf("%w: %v", ErrToolMissing, err)
	}

	dir := ManifestDir(entryDir)
	info, err := ReadModule(dir)
	if err != nil {
		return info, err
	}
	r.logger.Info("resolving dependencies", "dir", dir, "module", info.Path, "go", info.GoVersion)

	env := r.env()
	for _, args := range [][]string{{"mod", "download"}, {"mod", "tidy"}} {
		cmd := executor.Command{Name: "go", Args: args, Dir: dir, Env: env}
		r.logger.Debug("running", "cmd", cmd.String(), "dir", dir)
		out, err := r.exec.Run(ctx, cmd)
		if err != nil {
			return info, newCommandError(cmd, out, err)
		}
	}
	return info, nil
}

// env leaves GOTOOLCHAIN alone so download, tidy and build all select the
// same toolchain from the go and toolchain directives.
func (r *Resolver) env() []string {
	proxy := r.opts.GoProxy
	if proxy == "" {
		proxy = DefaultGoProxy
	}
	env := []string{
		"GOPROXY=" + proxy,
		"GIT_TERMINAL_PROMPT=0",
	}
	if r.opts.CredentialCommand != "" {
		env = append(env, "GIT_SSH_COMMAND="+r.opts.CredentialCommand)
	}
	return env
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
