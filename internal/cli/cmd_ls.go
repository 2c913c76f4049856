package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// LsCmd returns the ls command.
func LsCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	noSuffix := flags.BoolP("no-env-suffix", "x", false, "Do not suffix environment-marked names with (ENV)")

	return &Command{
		Flags: flags,
		Usage: "ls [-x]",
		Short: "List all names",
		Long:  "List names one per line. Without -x, environment-marked names are suffixed with (ENV).",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execLs(o, cfg, *noSuffix)
		},
	}
}

func execLs(o *IO, cfg config.Config, noSuffix bool) error {
	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	entries, err := t.List()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !noSuffix && e.IsEnv {
			o.Println(e.Name + " (ENV)")
		} else {
			o.Println(e.Name)
		}
	}

	return nil
}
