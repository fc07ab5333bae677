package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/internal/config"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/gotool"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/locator"
)

// Flag values only matter when Changed; defaults are shown in help and
// applied through config.EffectiveConfig.

func addOutDirFlag(cmd *cobra.Command) {
	cmd.Flags().String("out-dir", "", "Build output directory (default <home>/out)")
}

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("repo-url", config.DefaultRepoURL, "HTTPS URL of the prover repository")
	f.String("ssh-url", config.DefaultSSHURL, "SSH URL of the prover repository (empty disables SSH)")
	f.String("branch", config.DefaultBranch, "Branch to clone")
	f.Bool("use-ssh", false, "Clone over SSH without probing first")
	f.String("goproxy", gotool.DefaultGoProxy, "Module proxy chain for dependency resolution")
	f.String("git-ssh-command", "", "ssh command line used for SSH transports, e.g. \"ssh -i ~/.ssh/deploy\"")
	f.Int("max-depth", locator.DefaultMaxDepth, "Maximum directory depth searched for the entry point")
}
