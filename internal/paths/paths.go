// Package paths provides centralized path management for proofctl.
package paths

import (
	"os"
	"path/filepath"
)

// Names inside the build output directory.
const (
	RepoDirName    = "l0-prover"
	LibraryName    = "proof"
	ArchiveName    = "lib" + LibraryName + ".a"
	HeaderName     = "lib" + LibraryName + ".h"
	ManifestName   = "build.json"
	ConfigFileName = "proof.toml"
)

// Entry-point marker files.
const (
	EntryPointFile = "main.go"
	ModuleManifest = "go.mod"
)

const DefaultHomeDirName = ".proofctl"

// DefaultHomeDir returns $HOME/.proofctl or falls back to the current directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// DefaultOutDir returns the default build output directory under homeDir.
func DefaultOutDir(homeDir string) string {
	return filepath.Join(homeDir, "out")
}

// RepoPath returns the clone destination inside outDir.
func RepoPath(outDir string) string {
	return filepath.Join(outDir, RepoDirName)
}

// ArchivePath returns the static archive path inside outDir.
func ArchivePath(outDir string) string {
	return filepath.Join(outDir, ArchiveName)
}

// HeaderPath returns the C header the Go toolchain writes next to the archive.
func HeaderPath(outDir string) string {
	return filepath.Join(outDir, HeaderName)
}

// ManifestPath returns the build manifest path inside outDir.
func ManifestPath(outDir string) string {
	return filepath.Join(outDir, ManifestName)
}

// ConfigPath returns the proof.toml path under homeDir.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigFileName)
}
