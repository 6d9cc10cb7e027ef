package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// GeoJSON is the sub-command invoked when running "shapefile geojson".
var GeoJSON SubCommand

func initGeoJSON() {
	GeoJSON.Cmd = &cobra.Command{
		Use:   "geojson SHP DBF",
		Short: "Join a .shp/.dbf pair and write a GeoJSON FeatureCollection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeoJSON(cmd.OutOrStdout(), GeoJSON.Conf, args[0], args[1])
		},
	}
	flags := GeoJSON.Cmd.Flags()
	flags.String("out", "", "Output path. Defaults to the .shp path with a .geojson extension.")
	flags.Bool("named", false, "Only keep objects with a non-empty name.")
}

func runGeoJSON(out io.Writer, conf *viper.Viper, shp, dbf string) error {
	output := conf.GetString("out")
	if output == "" {
		output = strings.TrimSuffix(shp, filepath.Ext(shp)) + ".geojson"
	}

	opts := decodeOptions(conf)
	opts.NamedOnly = conf.GetBool("named")
	layer, err := shapefile.NewDecoder().DecodeWithOptions(shp, dbf, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "create %s", output)
	}
	w := bufio.NewWriter(f)
	if err := shapefile.WriteGeoJSON(w, layer.Objects()); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", output)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", output)
	}

	fmt.Fprintf(out, "wrote %d features to %s\n", layer.ObjectCount(), output)
	return nil
}
