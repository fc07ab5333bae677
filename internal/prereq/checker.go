package prereq

import (
	"context"
	"fmt"
	"os"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
)

// PrereqResult contains the result of a prerequisite check.
type PrereqResult struct {
	Name       string `json:"name"`
	Required   bool   `json:"required"`
	Found      bool   `json:"found"`
	Version    string `json:"version,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Checker performs prerequisite checks.
type Checker struct {
	exec      executor.CommandExecutor
	getenv    func(string) string
	minGo     string
	toolchain string
	results   []PrereqResult
}

// NewChecker creates a new prerequisite Checker.
func NewChecker(exec executor.CommandExecutor) *Checker {
	return &Checker{
		exec:    exec,
		getenv:  os.Getenv,
		results: make([]PrereqResult, 0),
	}
}

// RequireGo sets the minimum Go version, usually the module's go directive.
// An empty version only checks that go is installed.
func (c *Checker) RequireGo(minVersion string) *Checker {
	c.minGo = minVersion
	return c
}

// WithToolchain records a toolchain directive. When set, an older local Go
// is accepted as long as GOTOOLCHAIN permits switching.
func (c *Checker) WithToolchain(toolchain string) *Checker {
	c.toolchain = toolchain
	return c
}

// Check performs all prerequisite checks and returns the results.
func (c *Checker) Check(ctx context.Context) ([]PrereqResult, error) {
	c.results = make([]PrereqResult, 0)

	c.checkGo(ctx)
	c.checkCompiler()
	c.checkGit()

	if failed := c.FailedChecks(); len(failed) > 0 {
		return c.results, fmt.Errorf("prerequisite not met: %s - %s", failed[0].Name, failed[0].Message)
	}
	return c.results, nil
}

// checkGo checks if Go is installed with minimum version.
func (c *Checker) checkGo(ctx context.Context) {
	result := PrereqResult{
		Name:     "go",
		Required: true,
	}

	path, err := c.exec.LookPath("go")
	if err != nil {
		result.Message = "Go is not installed"
		result.Suggestion = "Install Go: https://go.dev/doc/install"
		c.results = append(c.results, result)
		return
	}
	result.Path = path

	out, err := c.exec.Run(ctx, executor.Command{Name: "go", Args: []string{"version"}})
	if err != nil {
		result.Message = "Failed to get Go version"
		c.results = append(c.results, result)
		return
	}
	result.Version = ParseGoVersion(string(out))

	if c.minGo != "" {
		ok, err := AtLeast(result.Version, c.minGo)
		switch {
		case err != nil:
			result.Message = fmt.Sprintf("Cannot compare Go %s with required %s: %v", result.Version, c.minGo, err)
			c.results = append(c.results, result)
			return
		case !ok && c.toolchainSwitchAllowed():
			result.Found = true
			result.Message = fmt.Sprintf("Go %s is older than %s; toolchain %s will be downloaded", result.Version, c.minGo, c.toolchain)
			c.results = append(c.results, result)
			return
		case !ok:
			result.Message = fmt.Sprintf("Go %s is older than required %s", result.Version, c.minGo)
			result.Suggestion = fmt.Sprintf("Install Go %s or newer", c.minGo)
			c.results = append(c.results, result)
			return
		}
	}

	result.Found = true
	result.Message = fmt.Sprintf("Go %s is available", result.Version)
	c.results = append(c.results, result)
}

func (c *Checker) toolchainSwitchAllowed() bool {
	if c.toolchain == "" {
		return false
	}
	return c.getenv("GOTOOLCHAIN") != "local"
}

// checkCompiler checks for the C compiler cgo will invoke.
func (c *Checker) checkCompiler() {
	result := PrereqResult{
		Name:     "cc",
		Required: true,
	}

	name := "cc"
	if cc := strings.Fields(c.getenv("CC")); len(cc) > 0 {
		name = cc[0]
	}
	path, err := c.exec.LookPath(name)
	if err != nil {
		result.Message = fmt.Sprintf("C compiler %s is not installed", name)
		result.Suggestion = "Install a C toolchain (build-essential, Xcode command line tools) or set CC"
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Message = fmt.Sprintf("%s is available", name)
	c.results = append(c.results, result)
}

// checkGit checks if git is installed. Cloning does not need it, but the
// go command uses it for modules served outside the proxy.
func (c *Checker) checkGit() {
	result := PrereqResult{
		Name:     "git",
		Required: false,
	}

	path, err := c.exec.LookPath("git")
	if err != nil {
		result.Message = "git is not installed"
		result.Suggestion = "Install git if the prover has dependencies not served by the module proxy"
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Message = "git is available"
	c.results = append(c.results, result)
}

// ParseGoVersion extracts the version from `go version` output,
// e.g. "go version go1.22.3 linux/amd64" yields "1.22.3".
func ParseGoVersion(output string) string {
	parts := strings.Fields(output)
	if len(parts) >= 3 {
		return strings.TrimPrefix(parts[2], "go")
	}
	return strings.TrimSpace(output)
}

// AtLeast reports whether have >= want. Both accept the go directive forms
// "1.21", "1.21.0" and "1.23rc1".
func AtLeast(have, want string) (bool, error) {
	h, err := goversion.NewVersion(strings.TrimPrefix(have, "go"))
	if err != nil {
		return false, err
	}
	w, err := goversion.NewVersion(strings.TrimPrefix(want, "go"))
	if err != nil {
		return false, err
	}
	return h.GreaterThanOrEqual(w), nil
}

// FailedChecks returns only the failed required checks.
func (c *Checker) FailedChecks() []PrereqResult {
	failed := make([]PrereqResult, 0)
	for _, result := range c.results {
		if result.Required && !result.Found {
			failed = append(failed, result)
		}
	}
	return failed
}
