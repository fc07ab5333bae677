package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/internal/builder"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/gotool"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/linkage"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/locator"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/repo"
	"github.com/altuslabsxyz/proof-bridge/internal/prereq"
)

type buildOptions struct {
	force   bool
	format  string
	emitCgo string
	pkg     string
}

func newBuildCmd(a *app) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Clone the prover and compile libproof.a",
		Long: `Clone (or reuse) the prover repository, locate its entry point, resolve
module dependencies and compile a c-archive.

The build is skipped when the archive exists and neither the commit nor the
entry point and go.mod changed since the last build. Use --force to rebuild.

Examples:
  # Build into ~/.proofctl/out
  proofctl build

  # Rebuild and print cargo directives
  proofctl build --force --format cargo

  # Clone over SSH with a deploy key
  proofctl build --use-ssh --git-ssh-command "ssh -i ~/.ssh/l0_deploy"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd.Context(), opts)
		},
	}

	addOutDirFlag(cmd)
	addSourceFlags(cmd)
	cmd.Flags().BoolVar(&opts.force, "force", false, "Rebuild even if the archive is up to date")
	cmd.Flags().StringVar(&opts.format, "format", "", "Also print link directives (cargo, ldflags, cgo, json)")
	cmd.Flags().StringVar(&opts.emitCgo, "emit-cgo", "", "Write the generated cgo link file into this directory")
	cmd.Flags().StringVar(&opts.pkg, "package", "proof", "Package name of the generated cgo link file")
	return cmd
}

func (a *app) runBuild(ctx context.Context, opts buildOptions) error {
	var format linkage.Format
	if opts.format != "" {
		f, err := linkage.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	}

	p := a.pipeline(opts.force)
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if res.Skipped {
		a.logger.Success("Archive is up to date: %s", res.Context.ArchivePath())
	} else {
		a.logger.Success("Built %s", res.Context.ArchivePath())
		if res.Reason != "" {
			a.logger.Debug("Rebuild reason: %s", res.Reason)
		}
	}
	a.logger.Info("  entry point: %s", res.Context.EntryDir())
	a.logger.Info("  transport:   %s", res.State.Transport)
	if res.Manifest != nil {
		a.logger.Info("  build id:    %s", res.Manifest.BuildID)
	}

	if format != "" {
		if err := linkage.Render(a.logger.Writer(), res.Directives, format, opts.pkg); err != nil {
			return err
		}
	}
	if opts.emitCgo != "" {
		path, err := writeCgoFile(opts.emitCgo, opts.pkg, res.Directives)
		if err != nil {
			return err
		}
		a.logger.Success("Wrote %s", path)
	}
	return nil
}

func (a *app) pipeline(force bool) *builder.Pipeline {
	cfg := a.cfg
	logger := a.logger.Slog()

	var progress io.Writer
	if a.logger.Verbose() {
		progress = a.logger.ErrWriter()
	}

	acq := repo.NewAcquirer(repo.Source{
		HTTPSURL: cfg.RepoURL.Value,
		SSHURL:   cfg.SSHURL.Value,
		Branch:   cfg.Branch.Value,
	}, a.newRemote(cfg, progress), cfg.UseSSH.Value, logger)

	loc := locator.New(logger)
	loc.MaxDepth = cfg.MaxDepth.Value

	resolver := gotool.NewResolver(a.exec, gotool.ResolverOptions{
		GoProxy:           cfg.GoProxy.Value,
		CredentialCommand: cfg.GitSSHCommand.Value,
	}, logger)
	compiler := gotool.NewNativeBuilder(a.exec, gotool.NativeOptions{
		MacOSMinVersion: cfg.MacOSMinVersion.Value,
	}, logger)

	stages := a.logger.Progress(len(builder.Stages))
	return builder.NewPipeline(acq, loc, resolver, compiler, builder.Options{
		OutDir:    cfg.ResolvedOutDir(),
		Force:     force,
		Preflight: a.preflight,
		OnStage: func(s builder.Stage) {
			stages.Stage(s.Description())
		},
	}, logger)
}

// preflight checks the toolchain against the prover's go.mod before any
// module download starts.
func (a *app) preflight(ctx context.Context, mod gotool.ModuleInfo) error {
	checker := prereq.NewChecker(a.exec).RequireGo(mod.GoVersion).WithToolchain(mod.Toolchain)
	results, err := checker.Check(ctx)
	for _, r := range results {
		if !r.Required && !r.Found {
			a.logger.Warn("%s", r.Message)
		}
	}
	if err != nil {
		return fmt.Errorf("%w (run %s doctor for details)", err, appName)
	}
	return nil
}
