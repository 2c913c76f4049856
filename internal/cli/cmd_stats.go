package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
)

// StatsCmd returns the stats command.
func StatsCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("stats", flag.ContinueOnError)
	csv := flags.Bool("csv", false, "Print a single CSV line instead of key=value lines")

	return &Command{
		Flags: flags,
		Usage: "stats [--csv]",
		Short: "Print occupancy statistics",
		Long:  "Print table occupancy as key=value lines, or as a single CSV line (total_size_bytes,data_offset,used_hash,used_collision,used_total) with --csv.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execStats(o, cfg, *csv)
		},
	}
}

func execStats(o *IO, cfg config.Config, csv bool) error {
	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	stats, err := t.Stats()
	if err != nil {
		return err
	}

	if csv {
		o.Printf("%d,%d,%d,%d,%d\n",
			stats.TotalSizeBytes, stats.DataOffsetWords, stats.UsedHash, stats.UsedCollision, stats.UsedTotal())

		return nil
	}

	o.Printf("total_size_bytes=%d\n", stats.TotalSizeBytes)
	o.Printf("data_offset=%d\n", stats.DataOffsetWords)
	o.Printf("used_hash=%d\n", stats.UsedHash)
	o.Printf("used_collision=%d\n", stats.UsedCollision)
	o.Printf("used_total=%d\n", stats.UsedTotal())

	return nil
}
