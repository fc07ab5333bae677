package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/internal/builder"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/gotool"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/locator"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
	"github.com/altuslabsxyz/proof-bridge/internal/prereq"
	"github.com/altuslabsxyz/proof-bridge/internal/tui"
)

func newDoctorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain and the current build",
		Long: `Check that go and a C compiler are installed, that the Go version satisfies
the prover's go.mod, and report the state of the last build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := a.doctor(cmd.Context())
			fmt.Fprintln(a.logger.Writer(), report.View())
			if report.Failed() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
	addOutDirFlag(cmd)
	return cmd
}

func (a *app) doctor(ctx context.Context) tui.Checklist {
	outDir := a.cfg.ResolvedOutDir()
	report := tui.Checklist{Title: appName + " doctor"}

	mod := a.cloneModule(outDir)
	checker := prereq.NewChecker(a.exec).RequireGo(mod.GoVersion).WithToolchain(mod.Toolchain)
	results, _ := checker.Check(ctx)
	for _, r := range results {
		item := tui.Item{Name: r.Name, Detail: r.Message, Hint: r.Suggestion}
		switch {
		case r.Found:
			item.Status = tui.StatusOK
		case r.Required:
			item.Status = tui.StatusFailed
		default:
			item.Status = tui.StatusWarning
		}
		report.Add(item)
	}

	cfgItem := tui.Item{Name: "config", Status: tui.StatusOK, Detail: "defaults"}
	if a.cfg.ConfigFilePath != "" {
		cfgItem.Detail = a.cfg.ConfigFilePath
	}
	report.Add(cfgItem)

	report.Add(buildItem(outDir))

	linkItem := tui.Item{Name: "native prover", Status: tui.StatusOK, Detail: "linked"}
	if _, err := a.foreign(); err != nil {
		linkItem.Status = tui.StatusWarning
		linkItem.Detail = "not linked"
		linkItem.Hint = "proofctl prove needs a binary built with -tags libproof"
	}
	report.Add(linkItem)
	return report
}

// cloneModule reads go.mod from an existing clone. It returns zero values
// when nothing has been cloned yet.
func (a *app) cloneModule(outDir string) gotool.ModuleInfo {
	repoPath := paths.RepoPath(outDir)
	if _, err := os.Stat(repoPath); err != nil {
		return gotool.ModuleInfo{}
	}
	loc := locator.New(a.logger.Slog())
	loc.MaxDepth = a.cfg.MaxDepth.Value
	entry, err := loc.Locate(repoPath)
	if err != nil {
		return gotool.ModuleInfo{}
	}
	mod, err := gotool.ReadModule(gotool.ManifestDir(entry))
	if err != nil {
		a.logger.Debug("cannot read go.mod: %v", err)
	}
	return mod
}

func buildItem(outDir string) tui.Item {
	item := tui.Item{Name: "archive"}
	m, err := builder.LoadManifest(outDir)
	switch {
	case errors.Is(err, builder.ErrNoManifest):
		item.Status = tui.StatusWarning
		item.Detail = "not built"
		item.Hint = "run proofctl build"
		return item
	case err != nil:
		item.Status = tui.StatusWarning
		item.Detail = err.Error()
		item.Hint = "run proofctl build --force"
		return item
	}

	if ok, reason := m.UpToDate(m.Commit, m.GOOS, m.Directives.RerunIfChanged); !ok {
		item.Status = tui.StatusWarning
		item.Detail = "stale: " + reason
		item.Hint = "run proofctl build"
		return item
	}
	item.Status = tui.StatusOK
	item.Detail = fmt.Sprintf("%s, built %s", m.ArchivePath, m.BuiltAt.Format("2006-01-02 15:04"))
	return item
}
