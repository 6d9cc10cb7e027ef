package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Unique is the sub-command invoked when running "shapefile unique".
var Unique SubCommand

func initUnique() {
	Unique.Cmd = &cobra.Command{
		Use:   "unique FILE.dbf",
		Short: "List the distinct values of one dBASE field",
		Long: "Unique decodes a .dbf file and writes the sorted distinct values of one " +
			"field to FILE.<field>.txt, one per line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnique(cmd.OutOrStdout(), Unique.Conf, args[0])
		},
	}
	Unique.Cmd.Flags().String("field", "fclass", "Field to collect distinct values of.")
}

func runUnique(out io.Writer, conf *viper.Viper, path string) error {
	field := conf.GetString("field")

	dbf, err := shapefile.NewDecoder().DecodeAttributes(path, decodeOptions(conf))
	if err != nil {
		return err
	}

	idx, ok := dbf.IndexOf(field)
	if !ok {
		return errors.Errorf("field %q not found in %s", field, path)
	}
	fmt.Fprintf(out, ".dbf parse OK, field %q is at index %d\n", field, idx)
	values, _ := dbf.Column(field)

	seen := make(map[string]struct{})
	for _, v := range values {
		seen[v] = struct{}{}
	}
	distinct := make([]string, 0, len(seen))
	for v := range seen {
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)

	output := strings.TrimSuffix(path, filepath.Ext(path)) + "." + field + ".txt"
	fmt.Fprintf(out, "writing %d values to %s\n", len(distinct), output)
	return errors.Wrapf(os.WriteFile(output, []byte(strings.Join(distinct, "\n")), 0o644), "write %s", output)
}
