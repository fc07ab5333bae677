package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/proof-bridge/internal/output"
	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// ConfigLoader is responsible for loading and merging configuration.
type ConfigLoader struct {
	homeDir    string
	configPath string // Explicit --config path
	workDir    string
	logger     *output.Logger
}

// NewConfigLoader creates a new ConfigLoader.
func NewConfigLoader(homeDir, configPath string, logger *output.Logger) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		configPath: configPath,
		workDir:    ".",
		logger:     logger,
	}
}

// candidates returns existing config files in order of increasing priority:
// <home>/proof.toml, ./proof.toml, then the explicit --config path.
func (l *ConfigLoader) candidates() ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, path)
	}

	if home := paths.ConfigPath(l.homeDir); fileExists(home) {
		add(home)
	}
	if local := filepath.Join(l.workDir, paths.ConfigFileName); fileExists(local) {
		add(local)
	}
	if l.configPath != "" {
		if !fileExists(l.configPath) {
			return nil, fmt.Errorf("config file not found: %s", l.configPath)
		}
		add(l.configPath)
	}
	return files, nil
}

// LoadFileConfig loads and parses config files, merging them in priority order.
// Later files override earlier ones. Returns the merged FileConfig and the
// highest priority file path, which is empty when no file was found.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	files, err := l.candidates()
	if err != nil {
		return nil, "", err
	}

	var merged FileConfig
	var primaryFile string
	for _, configFile := range files {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile
		l.warnUnknownKeys(configFile, data)

		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}
	return &merged, primaryFile, nil
}

// mergeFileConfig merges src into dst. Non-nil values in src overwrite dst.
func mergeFileConfig(dst, src *FileConfig) {
	mergePtr(&dst.Home, src.Home)
	mergePtr(&dst.NoColor, src.NoColor)
	mergePtr(&dst.Verbose, src.Verbose)
	mergePtr(&dst.OutDir, src.OutDir)
	mergePtr(&dst.RepoURL, src.RepoURL)
	mergePtr(&dst.SSHURL, src.SSHURL)
	mergePtr(&dst.Branch, src.Branch)
	mergePtr(&dst.UseSSH, src.UseSSH)
	mergePtr(&dst.GoProxy, src.GoProxy)
	mergePtr(&dst.GitSSHCommand, src.GitSSHCommand)
	mergePtr(&dst.MaxDepth, src.MaxDepth)
	mergePtr(&dst.MacOSMinVersion, src.MacOSMinVersion)
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *ConfigLoader) warnUnknownKeys(file string, data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return
	}
	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key %q in %s", key, file)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
