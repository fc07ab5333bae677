package linkage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects how directives are written.
type Format string

const (
	FormatCargo   Format = "cargo"   // cargo:rustc-link-* lines for a build script
	FormatLDFlags Format = "ldflags" // single line of linker flags
	FormatCgo     Format = "cgo"     // generated Go file with #cgo LDFLAGS
	FormatJSON    Format = "json"
)

// Formats lists the accepted values for --format.
var Formats = []Format{FormatCargo, FormatLDFlags, FormatCgo, FormatJSON}

// BuildTag guards the generated cgo file and the native binding.
const BuildTag = "libproof"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown link format %q (want one of cargo, ldflags, cgo, json)", s)
}

// Render writes d to w. pkg names the package of the generated cgo file and
// is ignored by the other formats.
func Render(w io.Writer, d Directives, f Format, pkg string) error {
	switch f {
	case FormatCargo:
		_, err := io.WriteString(w, strings.Join(Cargo(d), "\n")+"\n")
		return err
	case FormatLDFlags:
		_, err := fmt.Fprintln(w, LDFlags(d))
		return err
	case FormatCgo:
		_, err := w.Write(CgoFile(d, pkg))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown link format %q", f)
	}
}

// Cargo renders cargo build-script directives.
func Cargo(d Directives) []string {
	var lines []string
	for _, p := range d.SearchPaths {
		lines = append(lines, "cargo:rustc-link-search=native="+p)
	}
	for _, lib := range d.StaticLibs {
		lines = append(lines, "cargo:rustc-link-lib=static="+lib)
	}
	for _, fw := range d.Frameworks {
		lines = append(lines, "cargo:rustc-link-lib=framework="+fw)
	}
	for _, lib := range d.DynamicLibs {
		lines = append(lines, "cargo:rustc-link-lib=dylib="+lib)
	}
	for _, f := range d.RerunIfChanged {
		lines = append(lines, "cargo:rerun-if-changed="+f)
	}
	return lines
}

// LDFlags renders the linker arguments as one line, quoting arguments with spaces.
func LDFlags(d Directives) string {
	args := d.LinkerArgs()
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			args[i] = `"` + a + `"`
		}
	}
	return strings.Join(args, " ")
}

// CgoFile renders a Go source file that carries the link flags for a cgo
// binding compiled with the libproof build tag.
func CgoFile(d Directives, pkg string) []byte {
	var b strings.Builder
	b.WriteString("// Code generated by proofctl link; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "//go:build cgo && %s\n\n", BuildTag)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("/*\n")
	fmt.Fprintf(&b, "#cgo LDFLAGS: %s\n", LDFlags(d))
	b.WriteString("*/\n")
	b.WriteString("import \"C\"\n")
	return []byte(b.String())
}
