package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Objects is the sub-command invoked when running "shapefile objects".
var Objects SubCommand

func initObjects() {
	Objects.Cmd = &cobra.Command{
		Use:   "objects SHP DBF",
		Short: "Join a .shp/.dbf pair and dump the objects as text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjects(cmd.OutOrStdout(), Objects.Conf, args[0], args[1])
		},
	}
	flags := Objects.Cmd.Flags()
	flags.Bool("named", false, "Only keep objects with a non-empty name.")
	flags.String("out", "objects.txt", "Output file.")
}

func runObjects(out io.Writer, conf *viper.Viper, shp, dbf string) error {
	fmt.Fprintf(out, "Creating objects from %s and %s\n", shp, dbf)

	opts := decodeOptions(conf)
	opts.NamedOnly = conf.GetBool("named")
	layer, err := shapefile.NewDecoder().DecodeWithOptions(shp, dbf, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Spatial files parse OK, %d objects\n", layer.ObjectCount())

	path := conf.GetString("out")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	for i, o := range layer.Objects() {
		writeObject(w, i, o)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func writeObject(w io.Writer, index int, o shapefile.Object) {
	name, ok := o.Name()
	if !ok {
		name = "-"
	}
	g := o.Geometry()
	fmt.Fprintf(w, "%d\t%s\t%q\t%q", index, g.Type, o.Class(), name)
	switch g.Type {
	case shapefile.GeometryTypePolygon:
		fmt.Fprintf(w, "\trings=%d", len(g.Rings))
		for _, ring := range g.Rings {
			fmt.Fprintf(w, " %v", ring)
		}
	default:
		fmt.Fprintf(w, "\t%v", g.Coordinates)
	}
	fmt.Fprintln(w)
}
