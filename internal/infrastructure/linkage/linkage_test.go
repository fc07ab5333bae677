package linkage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForLinux(t *testing.T) {
	d := For("linux", "/out", "/out/l0-prover/cmd/prover", "/out/l0-prover")

	assert.Equal(t, []string{"/out"}, d.SearchPaths)
	assert.Equal(t, []string{"proof"}, d.StaticLibs)
	assert.Empty(t, d.Frameworks)
	assert.Equal(t, []string{"m", "resolv", "pthread", "dl"}, d.DynamicLibs)
	assert.Equal(t, []string{
		filepath.Join("/out/l0-prover/cmd/prover", "main.go"),
		filepath.Join("/out/l0-prover", "go.mod"),
	}, d.RerunIfChanged)
}

func TestForDarwin(t *testing.T) {
	d := For("darwin", "/out", "/src", "/src")

	assert.Equal(t, []string{"CoreFoundation", "Security"}, d.Frameworks)
	assert.Equal(t, []string{"resolv", "pthread", "dl"}, d.DynamicLibs)
}

func TestForOtherPlatform(t *testing.T) {
	d := For("freebsd", "/out", "/src", "/src")

	assert.Empty(t, d.Frameworks)
	assert.Equal(t, []string{"pthread", "dl"}, d.DynamicLibs)
}

func TestLinkerArgsOrder(t *testing.T) {
	d := For("darwin", "/out", "/src", "/src")
	assert.Equal(t, []string{
		"-L/out", "-lproof",
		"-framework", "CoreFoundation", "-framework", "Security",
		"-lresolv", "-lpthread", "-ldl",
	}, d.LinkerArgs())
}

func TestCargo(t *testing.T) {
	d := For("linux", "/out", "/src", "/src")
	lines := Cargo(d)

	assert.Equal(t, "cargo:rustc-link-search=native=/out", lines[0])
	assert.Equal(t, "cargo:rustc-link-lib=static=proof", lines[1])
	assert.Contains(t, lines, "cargo:rustc-link-lib=dylib=pthread")
	assert.Contains(t, lines, "cargo:rerun-if-changed="+filepath.Join("/src", "main.go"))
	assert.Contains(t, lines, "cargo:rerun-if-changed="+filepath.Join("/src", "go.mod"))
}

func TestLDFlagsQuotesSpaces(t *testing.T) {
	d := For("linux", "/my out", "/src", "/src")
	assert.Equal(t, `"-L/my out" -lproof -lm -lresolv -lpthread -ldl`, LDFlags(d))
}

func TestCgoFile(t *testing.T) {
	d := For("linux", "/out", "/src", "/src")
	src := string(CgoFile(d, "proof"))

	assert.True(t, strings.HasPrefix(src, "// Code generated by proofctl link; DO NOT EDIT."))
	assert.Contains(t, src, "//go:build cgo && libproof")
	assert.Contains(t, src, "package proof\n")
	assert.Contains(t, src, "#cgo LDFLAGS: -L/out -lproof -lm -lresolv -lpthread -ldl\n")
	assert.Contains(t, src, "import \"C\"")
}

func TestRenderJSON(t *testing.T) {
	d := For("linux", "/out", "/src", "/src")
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, FormatJSON, ""))

	var decoded Directives
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, d, decoded)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("bazel")
	assert.Error(t, err)
}
