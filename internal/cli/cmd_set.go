package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/denv"
)

// SetCmd returns the set command.
func SetCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)
	asEnv := flags.BoolP("env", "e", false, "Mark the entry as an environment variable")

	return &Command{
		Flags: flags,
		Usage: "set [-e] NAME VALUE",
		Short: "Set NAME to VALUE",
		Long:  "Set NAME to VALUE, optionally marking it as an environment variable. VALUE of `-` reads from stdin until EOF.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execSet(o, cfg, *asEnv, args)
		},
	}
}

var errWrongArgCount = errors.New("denv: expected exactly NAME VALUE")

func execSet(o *IO, cfg config.Config, asEnv bool, args []string) error {
	if len(args) != 2 {
		return errWrongArgCount
	}

	name, value := args[0], args[1]

	if asEnv && !validEnvName(name) {
		return fmt.Errorf("%w: %q", denv.ErrInvalidName, name)
	}

	if value == "-" {
		data, err := io.ReadAll(bufio.NewReader(o.In()))
		if err != nil {
			return fmt.Errorf("denv: reading value from stdin: %w", err)
		}

		value = string(data)
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	var extra denv.ElementFlag
	if asEnv {
		extra = denv.FlagIsEnv
	}

	return t.Set(name, value, extra)
}
