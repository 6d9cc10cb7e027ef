package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Batch is the sub-command invoked when running "shapefile batch".
var Batch SubCommand

func initBatch() {
	Batch.Cmd = &cobra.Command{
		Use:   "batch DIR",
		Short: "Preprocess every .shp/.dbf pair in a directory",
		Long: "Batch finds all pairs in DIR, decodes them concurrently and writes one " +
			"cache file per pair.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), Batch.Conf, args[0])
		},
	}
	flags := Batch.Cmd.Flags()
	flags.String("out_dir", "", "Directory for cache files. Defaults to DIR.")
	flags.Bool("skip_errors", false, "Keep going when a pair fails to decode.")
}

func runBatch(ctx context.Context, out io.Writer, conf *viper.Viper, dir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outDir := conf.GetString("out_dir")
	if outDir == "" {
		outDir = dir
	}

	pairs, err := shapefile.FindPairs(dir)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return errors.Errorf("no .shp/.dbf pairs found in %s", dir)
	}
	fmt.Fprintf(out, "Found %d pairs in %s\n", len(pairs), dir)

	opts := shapefile.DefaultLoadOptions()
	opts.Workers = conf.GetInt("workers")
	opts.SkipErrors = conf.GetBool("skip_errors")
	opts.Decode = decodeOptions(conf)
	opts.Progress = func(loaded, total int) {
		glog.V(1).Infof("decoded %d/%d pairs", loaded, total)
	}

	layers, errs := shapefile.LoadLayers(ctx, pairs, shapefile.NewDecoder(), opts)
	if !opts.SkipErrors && len(errs) > 0 {
		return errs[0]
	}

	var total shapefile.Stats
	for _, layer := range layers {
		path := filepath.Join(outDir, layer.Name()+shapefile.CacheFileExt)
		if err := shapefile.SaveObjects(path, layer.Objects()); err != nil {
			return err
		}
		total.Add(shapefile.Summarize(layer.Objects()))
		fmt.Fprintf(out, "%s: %s objects -> %s\n", layer.Name(), humanize.Comma(int64(layer.ObjectCount())), path)
	}
	for _, err := range errs {
		fmt.Fprintf(out, "skipped: %v\n", err)
	}
	fmt.Fprintf(out, "wrote %d layers, %s objects, %d failed\n", len(layers), humanize.Comma(int64(total.Total)), len(errs))
	return nil
}
