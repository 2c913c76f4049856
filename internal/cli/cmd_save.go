package cli

import (
	"bytes"
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/fs"
)

// SaveCmd returns the save command.
func SaveCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("save", flag.ContinueOnError),
		Usage: "save FILE",
		Short: "Snapshot the table to FILE",
		Exec: func(_ context.Context, _ *IO, args []string) error {
			return execSave(cfg, args)
		},
	}
}

func execSave(cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly FILE")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.Save(&buf); err != nil {
		return err
	}

	writer := fs.NewAtomicWriter(fs.NewReal())

	return writer.WriteWithDefaults(args[0], &buf)
}
