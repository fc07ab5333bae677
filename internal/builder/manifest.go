package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/linkage"
	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/repo"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// ErrNoManifest is returned by LoadManifest when no build has been recorded.
var ErrNoManifest = errors.New("no build manifest")

// Manifest records a successful build in <out>/build.json.
type Manifest struct {
	BuildID     string             `json:"build_id"`
	Commit      string             `json:"commit,omitempty"`
	Transport   repo.Transport     `json:"transport"`
	Module      string             `json:"module,omitempty"`
	GOOS        string             `json:"goos"`
	RepoPath    string             `json:"repo_path"`
	EntryDir    string             `json:"entry_dir"`
	ArchivePath string             `json:"archive_path"`
	HeaderPath  string             `json:"header_path"`
	Triggers    map[string]string  `json:"triggers"` // path -> sha256, empty if the file was absent
	Directives  linkage.Directives `json:"directives"`
	BuiltAt     time.Time          `json:"built_at"`
}

// LoadManifest reads the manifest from outDir.
func LoadManifest(outDir string) (*Manifest, error) {
	data, err := os.ReadFile(paths.ManifestPath(outDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// RemoveManifest deletes the manifest in outDir. A missing manifest is not an error.
func RemoveManifest(outDir string) error {
	if err := os.Remove(paths.ManifestPath(outDir)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove manifest: %w", err)
	}
	return nil
}

// Write saves the manifest to outDir, replacing any previous one.
func (m *Manifest) Write(outDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(outDir, ".build-*.json")
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), paths.ManifestPath(outDir)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// UpToDate reports whether the recorded build still matches: same commit
// and target, the archive present, and every trigger file unchanged.
func (m *Manifest) UpToDate(commit, goos string, triggers []string) (bool, string) {
	if m.Commit != commit {
		return false, fmt.Sprintf("commit changed (%s -> %s)", short(m.Commit), short(commit))
	}
	if m.GOOS != goos {
		return false, fmt.Sprintf("target changed (%s -> %s)", m.GOOS, goos)
	}
	if _, err := os.Stat(m.ArchivePath); err != nil {
		return false, "archive missing"
	}
	if len(triggers) != len(m.Triggers) {
		return false, "trigger set changed"
	}
	for _, path := range triggers {
		want, ok := m.Triggers[path]
		if !ok {
			return false, fmt.Sprintf("new trigger %s", path)
		}
		got, err := HashFile(path)
		if err != nil {
			return false, fmt.Sprintf("cannot hash %s: %v", path, err)
		}
		if got != want {
			return false, fmt.Sprintf("%s changed", filepath.Base(path))
		}
	}
	return true, ""
}

// HashFile returns the hex SHA-256 of path, or "" if it does not exist.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFiles hashes every path with HashFile.
func HashFiles(files []string) (map[string]string, error) {
	out := make(map[string]string, len(files))
	for _, path := range files {
		sum, err := HashFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", path, err)
		}
		out[path] = sum
	}
	return out, nil
}

func short(commit string) string {
	if commit == "" {
		return "unknown"
	}
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
