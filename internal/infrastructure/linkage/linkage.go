// Package linkage declares what a host build needs to link the static
// archive: search paths, libraries and re-run triggers.
package linkage

import (
	"path/filepath"

	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// Directives is the platform-specific link declaration for one build.
type Directives struct {
	GOOS           string   `json:"goos"`
	SearchPaths    []string `json:"search_paths"`
	StaticLibs     []string `json:"static_libs"`
	Frameworks     []string `json:"frameworks,omitempty"`
	DynamicLibs    []string `json:"dynamic_libs"`
	RerunIfChanged []string `json:"rerun_if_changed"`
}

// For returns the directives for linking lib<lib>.a from outDir on goos.
// Re-run triggers are the entry point source and the module manifest.
func For(goos, outDir, entryDir, manifestDir string) Directives {
	d := Directives{
		GOOS:        goos,
		SearchPaths: []string{outDir},
		StaticLibs:  []string{paths.LibraryName},
		RerunIfChanged: []string{
			filepath.Join(entryDir, paths.EntryPointFile),
			filepath.Join(manifestDir, paths.ModuleManifest),
		},
	}

	switch goos {
	case "darwin":
		d.Frameworks = []string{"CoreFoundation", "Security"}
		d.DynamicLibs = []string{"resolv"}
	case "linux":
		d.DynamicLibs = []string{"m", "resolv"}
	}
	d.DynamicLibs = append(d.DynamicLibs, "pthread", "dl")
	return d
}

// LinkerArgs returns the flags in link order: search paths, the archive,
// then system libraries.
func (d Directives) LinkerArgs() []string {
	var args []string
	for _, p := range d.SearchPaths {
		args = append(args, "-L"+p)
	}
	for _, lib := range d.StaticLibs {
		args = append(args, "-l"+lib)
	}
	for _, fw := range d.Frameworks {
		args = append(args, "-framework", fw)
	}
	for _, lib := range d.DynamicLibs {
		args = append(args, "-l"+lib)
	}
	return args
}
