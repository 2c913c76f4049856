package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/internal/shm"
)

// DropCmd returns the drop command.
func DropCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("drop", flag.ContinueOnError)
	force := flags.BoolP("force", "f", false, "Do not prompt for confirmation")

	return &Command{
		Flags: flags,
		Usage: "drop [-f]",
		Short: "Destroy the segment",
		Long:  "Destroy the shared-memory segment and its semaphore. Prompts for confirmation unless -f.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execDrop(o, cfg, *force)
		},
	}
}

func execDrop(o *IO, cfg config.Config, force bool) error {
	if !force {
		ok, err := confirm(o, "Really drop "+cfg.Path+"?")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	seg, err := shm.OpenSegment(cfg.Path, segmentProject, 0)
	if err != nil {
		return err
	}

	if err := seg.Drop(); err != nil {
		return err
	}

	mu, err := shm.OpenMutex(cfg.Path, mutexProject)
	if err != nil {
		return err
	}

	return mu.Drop()
}
