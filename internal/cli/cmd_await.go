package cli

import (
	"context"
	"errors"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// awaitPollInterval is how often Await re-checks the table.
const awaitPollInterval = 50 * time.Millisecond

// AwaitCmd returns the await command.
func AwaitCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("await", flag.ContinueOnError),
		Usage: "await NAME",
		Short: "Block until NAME is set",
		Long:  "Block (polling) until NAME receives a set by another process.",
		Exec: func(ctx context.Context, _ *IO, args []string) error {
			return execAwait(ctx, cfg, args)
		},
	}
}

func execAwait(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly NAME")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	return t.Await(ctx, args[0], awaitPollInterval)
}
