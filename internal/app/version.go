package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Build information, set with -ldflags "-X github.com/agbru/numcalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request version output. Only the
// arguments before a bare "--" are examined.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-V", "--V", "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	version, commit := Version, Commit
	if info, ok := debug.ReadBuildInfo(); ok && version == "dev" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			version = v
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && commit == "unknown" {
				commit = s.Value
			}
		}
	}
	fmt.Fprintf(out, "numcalc %s\n", version)
	fmt.Fprintf(out, "  commit:  %s\n", commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// ExitCodeForStartup maps an error from New to an exit code.
func ExitCodeForStartup(err error) int {
	return apperrors.ExitCodeFor(err)
}
