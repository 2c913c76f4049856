package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/pkg/denv"
)

// These are overridden at build time via -ldflags, baking release metadata
// into the binary rather than reading it from an external file at runtime.
// buildTimestamp feeds the disc hash in versionString.
var (
	versionMajor   = "0"
	versionMinor   = "1"
	versionFix     = "0"
	buildTimestamp = "unknown"
)

// versionString formats the four-part MAJOR.MINOR.FIX.DISC version string,
// where DISC is an FNV-1a hash of the build timestamp.
func versionString() string {
	return fmt.Sprintf("denv %s.%s.%s.%d", versionMajor, versionMinor, versionFix, denv.DiscHash(buildTimestamp))
}

// VersionCmd returns the version command.
func VersionCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("version", flag.ContinueOnError),
		Usage: "version",
		Short: "Print version",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println(versionString())
			return nil
		},
	}
}
