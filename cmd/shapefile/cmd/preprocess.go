package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Preprocess is the sub-command invoked when running "shapefile preprocess".
var Preprocess SubCommand

func initPreprocess() {
	Preprocess.Cmd = &cobra.Command{
		Use:   "preprocess SHP DBF",
		Short: "Join a .shp/.dbf pair and save the objects to a cache file",
		Long: "Preprocess decodes and joins a pair once and writes the objects to a " +
			"compressed cache file that stats and other tools can load quickly.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(cmd.OutOrStdout(), Preprocess.Conf, args[0], args[1])
		},
	}
	Preprocess.Cmd.Flags().String("out", "",
		"Output path. Defaults to the .shp path with a "+shapefile.CacheFileExt+" extension.")
}

func runPreprocess(out io.Writer, conf *viper.Viper, shp, dbf string) error {
	output := conf.GetString("out")
	if output == "" {
		output = cachePath(shp)
	}

	start := time.Now()
	fmt.Fprintf(out, "Creating objects from %s and %s\n", shp, dbf)
	layer, err := shapefile.NewDecoder().DecodeWithOptions(shp, dbf, decodeOptions(conf))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "objects ok (%s), writing %s objects to %s\n",
		time.Since(start).Round(time.Millisecond), humanize.Comma(int64(layer.ObjectCount())), output)

	return shapefile.SaveObjects(output, layer.Objects())
}

// cachePath swaps the extension of a .shp path for the cache extension.
func cachePath(shp string) string {
	return strings.TrimSuffix(shp, filepath.Ext(shp)) + shapefile.CacheFileExt
}
