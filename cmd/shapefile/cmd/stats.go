package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Stats is the sub-command invoked when running "shapefile stats".
var Stats SubCommand

func initStats() {
	Stats.Cmd = &cobra.Command{
		Use:   "stats FILE...",
		Short: "Print object counts of preprocessed cache files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), Stats.Conf, args)
		},
	}
}

func runStats(out io.Writer, _ *viper.Viper, paths []string) error {
	var total shapefile.Stats
	for _, path := range paths {
		start := time.Now()
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		objects, err := shapefile.LoadObjects(path)
		if err != nil {
			return err
		}
		s := shapefile.Summarize(objects)
		total.Add(s)

		fmt.Fprintf(out, "%s (%s, read in %s)\n", path,
			humanize.Bytes(uint64(info.Size())), time.Since(start).Round(time.Millisecond))
		printStats(out, s)
	}
	if len(paths) > 1 {
		fmt.Fprintln(out, "total")
		printStats(out, total)
	}
	return nil
}

func printStats(out io.Writer, s shapefile.Stats) {
	n := humanize.Comma(int64(s.Total))
	fmt.Fprintf(out, "  num objects: %s\n", n)
	fmt.Fprintf(out, "  named objects: %s/%s\n", humanize.Comma(int64(s.Named)), n)
	fmt.Fprintf(out, "  lines: %s/%s\n", humanize.Comma(int64(s.Lines)), n)
	fmt.Fprintf(out, "  points: %s/%s\n", humanize.Comma(int64(s.Points)), n)
	fmt.Fprintf(out, "  polygons: %s/%s\n", humanize.Comma(int64(s.Polygons)), n)
}
