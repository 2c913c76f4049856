package cli

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// LoadCmd returns the load command.
func LoadCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("load", flag.ContinueOnError)
	force := flags.BoolP("force", "f", false, "Do not prompt for confirmation")

	return &Command{
		Flags: flags,
		Usage: "load [-f] FILE",
		Short: "Overwrite the table from FILE",
		Long:  "Overwrite the table from a snapshot written by save. Prompts for confirmation unless -f.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execLoad(o, cfg, *force, args)
		},
	}
}

func execLoad(o *IO, cfg config.Config, force bool, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly FILE")
	}

	if !force {
		ok, err := confirm(o, "Really overwrite the table from "+args[0]+"?")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	return t.Load(f)
}
