package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/denv"
)

// GetCmd returns the get command.
func GetCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("get", flag.ContinueOnError),
		Usage: "get NAME",
		Short: "Print VALUE for NAME",
		Long:  "Print VALUE followed by a newline. Prints nothing and exits nonzero on miss.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execGet(o, cfg, args)
		},
	}
}

func execGet(o *IO, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly NAME")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	value, ok, err := t.Get(args[0])
	if err != nil {
		return err
	}

	if !ok {
		return denv.ErrNotFound
	}

	o.Println(value)

	return nil
}
