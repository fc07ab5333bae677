package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/internal/config"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
	"github.com/altuslabsxyz/proof-bridge/internal/version"
)

const appName = "proofctl"

// NewRootCmd creates the proofctl command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Build and invoke the l0 prover static library",
		Long: `proofctl fetches the l0 prover, compiles it into a static archive
(libproof.a) and prints the directives a host build needs to link it.

Examples:
  # Clone, resolve dependencies and build the archive
  proofctl build

  # Print cargo build-script directives for the last build
  proofctl link --format cargo

  # Run the reference proof request through the linked prover
  proofctl prove

  # Check the toolchain
  proofctl doctor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.homeDir, "home", "H", paths.DefaultHomeDir(),
		"Base directory for proofctl data")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to proof.toml file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false,
		"Disable colored output")

	cmd.AddCommand(
		newBuildCmd(a),
		newLinkCmd(a),
		newProveCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
		version.NewCmd(appName),
	)
	return cmd
}

// loadConfig builds the effective configuration.
// Priority: default < proof.toml < environment < flag
func (a *app) loadConfig(cmd *cobra.Command) error {
	loader := config.NewConfigLoader(a.homeDir, a.configPath, a.logger)
	fileCfg, configFilePath, err := loader.LoadFileConfig()
	if err != nil {
		return err
	}

	cfg := config.NewEffectiveConfig(a.homeDir)
	cfg.ApplyFile(fileCfg, configFilePath)
	cfg.ApplyEnv(a.getenv)

	flags := cmd.Flags()
	config.ApplyStringFlag(cmd, "home", &cfg.Home)
	config.ApplyBoolFlag(cmd, "verbose", &cfg.Verbose)
	config.ApplyBoolFlag(cmd, "no-color", &cfg.NoColor)
	if flags.Lookup("out-dir") != nil {
		config.ApplyStringFlag(cmd, "out-dir", &cfg.OutDir)
	}
	if flags.Lookup("repo-url") != nil {
		config.ApplyStringFlag(cmd, "repo-url", &cfg.RepoURL)
		config.ApplyStringFlag(cmd, "ssh-url", &cfg.SSHURL)
		config.ApplyStringFlag(cmd, "branch", &cfg.Branch)
		config.ApplyBoolFlag(cmd, "use-ssh", &cfg.UseSSH)
		config.ApplyStringFlag(cmd, "goproxy", &cfg.GoProxy)
		config.ApplyStringFlag(cmd, "git-ssh-command", &cfg.GitSSHCommand)
		config.ApplyIntFlag(cmd, "max-depth", &cfg.MaxDepth)
	}

	if cfg.NoColor.Value {
		a.logger.SetNoColor(true)
	}
	a.logger.SetVerbose(cfg.Verbose.Value)
	if configFilePath != "" {
		a.logger.Debug("Using config file: %s", configFilePath)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
