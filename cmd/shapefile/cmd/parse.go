package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Parse is the sub-command invoked when running "shapefile parse".
var Parse SubCommand

func initParse() {
	Parse.Cmd = &cobra.Command{
		Use:   "parse",
		Short: "Decode a shape file and exit",
		Long: "Parse decodes every record of a .shp file and reports the record count. " +
			"Useful for timing the decoder in either read mode.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), Parse.Conf)
		},
	}
	flags := Parse.Cmd.Flags()
	flags.String("shp", "", "Path to the .shp file.")
	flags.String("mode", "file", "Read mode: file (buffered stream) or bytes (whole file in memory).")
}

func runParse(out io.Writer, conf *viper.Viper) error {
	path := conf.GetString("shp")
	if path == "" {
		return errors.New("--shp is required")
	}
	mode, err := shapefile.ParseReadMode(conf.GetString("mode"))
	if err != nil {
		return err
	}

	start := time.Now()
	file, err := shapefile.NewDecoder().DecodeShapes(path, mode)
	if err != nil {
		return err
	}

	header := file.Header()
	fmt.Fprintf(out, "OK: %s records of %s, %s in %s (%s mode)\n",
		humanize.Comma(int64(file.RecordCount())), header.ShapeType,
		humanize.Bytes(uint64(header.FileLengthBytes)),
		time.Since(start).Round(time.Millisecond), mode)
	return nil
}
