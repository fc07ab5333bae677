package main

import (
	"io"
	"os"

	"github.com/altuslabsxyz/proof-bridge/internal/config"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/repo"
	"github.com/altuslabsxyz/proof-bridge/internal/output"
	"github.com/altuslabsxyz/proof-bridge/pkg/proof"
)

// app holds the collaborators shared by all commands. Tests replace them.
type app struct {
	logger *output.Logger

	// Global flags
	homeDir    string
	configPath string
	verbose    bool
	noColor    bool

	// cfg is the effective configuration, set in PersistentPreRunE.
	cfg *config.EffectiveConfig

	getenv    func(string) string
	exec      executor.CommandExecutor
	newRemote func(cfg *config.EffectiveConfig, progress io.Writer) repo.Remote
	foreign   func() (proof.Foreign, error)
}

func newApp() *app {
	return &app{
		logger: output.DefaultLogger,
		getenv: os.Getenv,
		exec:   executor.NewOSCommandExecutor(),
		newRemote: func(cfg *config.EffectiveConfig, progress io.Writer) repo.Remote {
			return &repo.GoGitRemote{
				CredentialCommand: cfg.GitSSHCommand.Value,
				Progress:          progress,
			}
		},
		foreign: proof.Native,
	}
}
