package cli

import (
	"bytes"
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/fs"
)

// ExportCmd returns the export command.
func ExportCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("export", flag.ContinueOnError),
		Usage: "export FILE|-",
		Short: "Write export lines for environment-marked entries",
		Long:  "Write `export NAME=VALUE` lines for every environment-marked entry to FILE, or to stdout if FILE is -.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execExport(o, cfg, args)
		},
	}
}

func execExport(o *IO, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly FILE")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	if args[0] == "-" {
		return t.Export(o.out)
	}

	var buf bytes.Buffer
	if err := t.Export(&buf); err != nil {
		return err
	}

	writer := fs.NewAtomicWriter(fs.NewReal())

	return writer.WriteWithDefaults(args[0], &buf)
}
