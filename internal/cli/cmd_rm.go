package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// RmCmd returns the rm command.
func RmCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm NAME",
		Short: "Delete NAME",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execRm(o, cfg, args)
		},
	}
}

func execRm(_ *IO, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly NAME")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	_, err = t.Delete(args[0])

	return err
}
