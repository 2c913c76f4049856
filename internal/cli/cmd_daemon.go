package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/denv"
	"github.com/calvinalkan/denv/pkg/fs"
)

// DaemonCmd returns the daemon command.
func DaemonCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("daemon", flag.ContinueOnError),
		Usage: "daemon SAVEFILE",
		Short: "Keep the segment alive, snapshotting SAVEFILE on shutdown",
		Long:  "On start, load SAVEFILE if it exists. Block until SIGTERM/SIGINT/SIGHUP. On wake, rotate SAVEFILE to SAVEFILE.old then write a fresh snapshot.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execDaemon(ctx, o, cfg, args)
		},
	}
}

func execDaemon(ctx context.Context, o *IO, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("denv: expected exactly SAVEFILE")
	}

	savefile := args[0]
	log := slog.New(slog.NewTextHandler(o.errOut, nil))

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	log.Info("attach", "path", cfg.Path)

	if _, statErr := os.Stat(savefile); statErr == nil {
		if err := loadSavefile(t, savefile); err != nil {
			return err
		}

		log.Info("loaded savefile", "path", savefile)
	}

	<-ctx.Done()

	log.Info("signal received")

	if err := rotateAndSnapshot(t, savefile); err != nil {
		log.Info("exit", "error", err)
		return err
	}

	log.Info("snapshot written", "path", savefile)
	log.Info("exit")

	return nil
}

func loadSavefile(t *denv.Table, savefile string) error {
	f, err := os.Open(savefile)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Load(f)
}

// rotateAndSnapshot renames an existing savefile to savefile+".old" (fsyncing
// the directory entry, since a bare rename is not durable on common Linux
// filesystems without it), then writes a fresh snapshot to savefile.
func rotateAndSnapshot(t *denv.Table, savefile string) error {
	if _, err := os.Stat(savefile); err == nil {
		if err := os.Rename(savefile, savefile+".old"); err != nil {
			return err
		}

		if err := fsyncDir(filepath.Dir(savefile)); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := t.Save(&buf); err != nil {
		return err
	}

	writer := fs.NewAtomicWriter(fs.NewReal())

	return writer.WriteWithDefaults(savefile, &buf)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
