package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// CloneCmd returns the clone command.
func CloneCmd(cfg config.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("clone", flag.ContinueOnError),
		Usage: "clone",
		Short: "Copy the caller's environment into the table",
		Long:  "Copy every NAME=VALUE pair of the caller's current environment into the table as environment-marked entries.",
		Exec: func(_ context.Context, _ *IO, _ []string) error {
			return execClone(cfg, env)
		},
	}
}

func execClone(cfg config.Config, env map[string]string) error {
	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	environ := make([]string, 0, len(env))
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}

	return t.Clone(environ)
}
