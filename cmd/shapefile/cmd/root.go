package cmd

import (
	goflag "flag"
	"fmt"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// EnvPrefix is prepended to configuration keys read from the environment,
// e.g. SHAPEFILE_CODEPAGE.
const EnvPrefix = "SHAPEFILE"

// SubCommand pairs a cobra command with its own configuration.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shapefile",
	Short: "Decode shape files and their dBASE attributes",
	Long: `
shapefile decodes ESRI shape files (.shp) together with their dBASE attribute
tables (.dbf) into named, classified objects. Records are paired by position.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		glog.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

var rootConf = viper.New()

var subcommands = []*SubCommand{
	&Parse, &Unique, &Objects, &Preprocess, &Batch, &Stats, &GeoJSON,
}

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	RootCmd.PersistentFlags().String("name_field", "name",
		"dBASE field holding object names. Empty disables names.")
	RootCmd.PersistentFlags().String("class_field", "fclass",
		"dBASE field holding the feature classification.")
	RootCmd.PersistentFlags().String("codepage", "",
		"dBASE text encoding, e.g. 1252 or ISO-8859-1. Defaults to the .cpg sidecar, else UTF-8.")
	RootCmd.PersistentFlags().Int("workers", runtime.NumCPU(),
		"Number of layers decoded concurrently.")
	_ = rootConf.BindPFlags(RootCmd.PersistentFlags())

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	initParse()
	initUnique()
	initObjects()
	initPreprocess()
	initBatch()
	initStats()
	initGeoJSON()
	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
		_ = sc.Conf.BindPFlags(RootCmd.PersistentFlags())
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				glog.Fatalf("%v", errors.Wrapf(err, "reading config %s", cfg))
			}
		}
	})
}

// decodeOptions reads the shared decoding keys from conf.
func decodeOptions(conf *viper.Viper) shapefile.DecodeOptions {
	opts := shapefile.DefaultDecodeOptions()
	opts.NameField = conf.GetString("name_field")
	opts.ClassField = conf.GetString("class_field")
	opts.CodePage = conf.GetString("codepage")
	return opts
}
