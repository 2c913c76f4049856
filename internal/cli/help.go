package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// HelpCmd returns the help command. Its Exec is never actually reached by
// Run (help is special-cased before config resolution so it works without
// HOME set); it exists so help appears in the command listing.
func HelpCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("help", flag.ContinueOnError),
		Usage: "help",
		Short: "Print usage",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			printUsage(o.out, allCommands(config.Config{}, nil))
			return nil
		},
	}
}
