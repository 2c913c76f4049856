package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// CleanupCmd returns the cleanup command.
func CleanupCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("cleanup", flag.ContinueOnError),
		Usage: "cleanup",
		Short: "Compact the table",
		Long:  "Rebuild the table, discarding tombstoned entries and abandoned arena fragments.",
		Exec: func(_ context.Context, _ *IO, _ []string) error {
			t, err := openTable(cfg)
			if err != nil {
				return err
			}

			return t.Cleanup()
		},
	}
}
