package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/internal/builder"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/linkage"
)

// cgoFileName is the file written by --emit-cgo.
const cgoFileName = "zz_libproof_link.go"

func newLinkCmd(a *app) *cobra.Command {
	var (
		format  string
		emitCgo string
		pkg     string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print link directives for the last build",
		Long: `Print the directives a host build needs to link libproof.a, read from the
manifest written by "proofctl build".

Formats:
  cargo    cargo:rustc-link-* lines, for a Rust build script
  ldflags  one line of linker flags
  cgo      a Go source file with #cgo LDFLAGS (build tag libproof)
  json     the raw directives

Examples:
  # In build.rs: run and forward stdout
  proofctl link --format cargo

  # Generate the link file for the native Go binding
  proofctl link --emit-cgo ./pkg/proof`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := linkage.ParseFormat(format)
			if err != nil {
				return err
			}

			outDir := a.cfg.ResolvedOutDir()
			m, err := builder.LoadManifest(outDir)
			if errors.Is(err, builder.ErrNoManifest) {
				return fmt.Errorf("no build found in %s; run %s build first", outDir, appName)
			}
			if err != nil {
				return err
			}
			if ok, reason := m.UpToDate(m.Commit, m.GOOS, m.Directives.RerunIfChanged); !ok {
				a.logger.Warn("archive may be stale (%s); run %s build", reason, appName)
			}

			if emitCgo != "" {
				path, err := writeCgoFile(emitCgo, pkg, m.Directives)
				if err != nil {
					return err
				}
				a.logger.Success("Wrote %s", path)
				if !cmd.Flags().Changed("format") {
					return nil
				}
			}
			return linkage.Render(a.logger.Writer(), m.Directives, f, pkg)
		},
	}

	addOutDirFlag(cmd)
	cmd.Flags().StringVar(&format, "format", string(linkage.FormatCargo), "Output format (cargo, ldflags, cgo, json)")
	cmd.Flags().StringVar(&emitCgo, "emit-cgo", "", "Write the generated cgo link file into this directory")
	cmd.Flags().StringVar(&pkg, "package", "proof", "Package name of the generated cgo link file")
	return cmd
}

func writeCgoFile(dir, pkg string, d linkage.Directives) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, cgoFileName)
	if err := os.WriteFile(path, linkage.CgoFile(d, pkg), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
