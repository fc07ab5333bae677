// Package builder runs the build pipeline: acquire the prover source, locate
// its entry point, resolve dependencies, compile the static archive and
// record how to link it.
package builder

// BuildContext carries the paths shared by the build stages. It is created
// once the entry point is known and does not change afterwards.
type BuildContext struct {
	outDir      string
	repoPath    string
	entryDir    string
	archivePath string
}

// NewBuildContext creates a BuildContext.
func NewBuildContext(outDir, repoPath, entryDir, archivePath string) BuildContext {
	return BuildContext{
		outDir:      outDir,
		repoPath:    repoPath,
		entryDir:    entryDir,
		archivePath: archivePath,
	}
}

// OutDir is the directory holding the clone, the archive and the manifest.
func (c BuildContext) OutDir() string { return c.outDir }

// RepoPath is the local clone.
func (c BuildContext) RepoPath() string { return c.repoPath }

// EntryDir is the directory holding the prover's main package.
func (c BuildContext) EntryDir() string { return c.entryDir }

// ArchivePath is where the static archive is written.
func (c BuildContext) ArchivePath() string { return c.archivePath }
