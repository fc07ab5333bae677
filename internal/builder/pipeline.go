package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/gotool"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/linkage"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/repo"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// Acquirer provides a local clone of the prover repository.
type Acquirer interface {
	Acquire(ctx context.Context, dest string) (repo.State, error)
}

// Locator finds the entry-point directory inside a clone.
type Locator interface {
	Locate(root string) (string, error)
}

// Resolver fetches module dependencies for an entry point.
type Resolver interface {
	Resolve(ctx context.Context, entryDir string) (gotool.ModuleInfo, error)
}

// Compiler produces the static archive.
type Compiler interface {
	Build(ctx context.Context, entryDir, archivePath string) error
}

// PreflightFunc runs before dependency resolution with the module manifest
// read from the entry point, e.g. to check the Go version.
type PreflightFunc func(ctx context.Context, mod gotool.ModuleInfo) error

// Options configures a Pipeline.
type Options struct {
	OutDir    string
	GOOS      string // Target OS for link directives, defaults to runtime.GOOS
	Force     bool   // Rebuild even if the manifest says the archive is current
	Preflight PreflightFunc
	OnStage   func(Stage) // Called as each stage starts
}

// Result describes a pipeline run.
type Result struct {
	Context    BuildContext
	State      repo.State
	Module     gotool.ModuleInfo
	Directives linkage.Directives
	Manifest   *Manifest
	Skipped    bool   // archive was up to date
	Reason     string // why a rebuild happened, empty when skipped or forced
}

// Pipeline runs the build stages in order and stops at the first failure.
type Pipeline struct {
	acquirer Acquirer
	locator  Locator
	resolver Resolver
	compiler Compiler
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline creates a Pipeline.
func NewPipeline(a Acquirer, l Locator, r Resolver, c Compiler, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	return &Pipeline{
		acquirer: a,
		locator:  l,
		resolver: r,
		compiler: c,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes acquire, discover, dependencies, compile and link. Every
// failure is returned as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	outDir := p.opts.OutDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, stageErr(StageAcquire, fmt.Errorf("failed to create output directory: %w", err))
	}

	p.stage(StageAcquire)
	p.logger.Info("acquiring prover source", "dest", paths.RepoPath(outDir))
	state, err := p.acquirer.Acquire(ctx, paths.RepoPath(outDir))
	if err != nil {
		return nil, stageErr(StageAcquire, err)
	}

	p.stage(StageDiscover)
	entryDir, err := p.locator.Locate(state.Path)
	if err != nil {
		return nil, stageErr(StageDiscover, err)
	}
	p.logger.Info("entry point found", "dir", entryDir)

	bc := NewBuildContext(outDir, state.Path, entryDir, paths.ArchivePath(outDir))
	directives := linkage.For(p.opts.GOOS, outDir, entryDir, gotool.ManifestDir(entryDir))
	res := &Result{Context: bc, State: state, Directives: directives}

	if !p.opts.Force {
		m, ok, reason := p.current(state, directives)
		if ok {
			p.logger.Info("archive is up to date", "archive", bc.ArchivePath(), "build_id", m.BuildID)
			res.Manifest = m
			res.Directives = m.Directives
			res.Skipped = true
			return res, nil
		}
		res.Reason = reason
	}

	// The previous directives no longer describe what is on disk once a
	// rebuild starts, so a failure below must leave no manifest behind.
	if err := RemoveManifest(outDir); err != nil {
		return nil, stageErr(StageLink, err)
	}

	p.stage(StageDependencies)
	if p.opts.Preflight != nil {
		mod, err := gotool.ReadModule(gotool.ManifestDir(entryDir))
		if err != nil {
			return nil, stageErr(StageDependencies, err)
		}
		if err := p.opts.Preflight(ctx, mod); err != nil {
			return nil, stageErr(StageDependencies, err)
		}
	}

	mod, err := p.resolver.Resolve(ctx, entryDir)
	if err != nil {
		return nil, stageErr(StageDependencies, err)
	}
	res.Module = mod

	p.stage(StageCompile)
	p.logger.Info("compiling static archive", "archive", bc.ArchivePath())
	if err := p.compiler.Build(ctx, bc.EntryDir(), bc.ArchivePath()); err != nil {
		return nil, stageErr(StageCompile, err)
	}

	p.stage(StageLink)
	triggers, err := HashFiles(directives.RerunIfChanged)
	if err != nil {
		return nil, stageErr(StageLink, err)
	}
	m := &Manifest{
		BuildID:     uuid.NewString(),
		Commit:      state.Commit,
		Transport:   state.Transport,
		Module:      mod.Path,
		GOOS:        p.opts.GOOS,
		RepoPath:    bc.RepoPath(),
		EntryDir:    bc.EntryDir(),
		ArchivePath: bc.ArchivePath(),
		HeaderPath:  paths.HeaderPath(outDir),
		Triggers:    triggers,
		Directives:  directives,
		BuiltAt:     p.now().UTC(),
	}
	if err := m.Write(outDir); err != nil {
		return nil, stageErr(StageLink, err)
	}
	res.Manifest = m
	p.logger.Info("build complete", "build_id", m.BuildID, "commit", short(m.Commit))
	return res, nil
}

func (p *Pipeline) stage(s Stage) {
	if p.opts.OnStage != nil {
		p.opts.OnStage(s)
	}
}

func (p *Pipeline) current(state repo.State, d linkage.Directives) (*Manifest, bool, string) {
	m, err := LoadManifest(p.opts.OutDir)
	if err != nil {
		if !errors.Is(err, ErrNoManifest) {
			p.logger.Warn("ignoring unreadable manifest", "error", err)
		}
		return nil, false, "no previous build"
	}
	ok, reason := m.UpToDate(state.Commit, p.opts.GOOS, d.RerunIfChanged)
	if !ok {
		p.logger.Debug("rebuild required", "reason", reason)
	}
	return m, ok, reason
}
