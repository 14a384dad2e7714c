// Command widgetspec resolves the effective structure of widgets in a
// compiled component library: props, events, inheritance and styles.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnana997/widgetspec/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	logger  *slog.Logger
	logOut  io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logOut: os.Stderr}

	root := &cobra.Command{
		Use:           "widgetspec",
		Short:         "Resolve widget props, events, inheritance and styles",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default .widgetspec/config.yaml)")
	flags.String("library-root", "", "root directory of the compiled component library")
	flags.String("styledef-root", "", "root directory of style-definition files")
	flags.String("styledef-subdir", "components", "directory between the styledef root and the category")
	flags.String("runtime-root", "", "directory that package-prefixed imports resolve under")
	flags.String("package-prefix", "@wavemaker/app-rn-runtime", "import prefix mapped onto the runtime root")
	flags.String("catalog", "", "widget catalog JSON (default: bundled catalog)")
	flags.StringSlice("generic-base", nil, "additional framework root class names")
	flags.StringSlice("event-callback", nil, "additional non-\"on\" callback props treated as events")
	flags.StringSlice("exclude", nil, "additional doublestar patterns skipped during discovery")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.Int("cache-size", 0, "maximum number of source files kept in memory (0 = default)")

	for key, flag := range map[string]string{
		"library_root":    "library-root",
		"styledef_root":   "styledef-root",
		"styledef_subdir": "styledef-subdir",
		"runtime_root":    "runtime-root",
		"package_prefix":  "package-prefix",
		"catalog_path":    "catalog",
		"generic_bases":   "generic-base",
		"event_callbacks": "event-callback",
		"exclude":         "exclude",
		"log.level":       "log-level",
		"log.format":      "log-format",
		"cache.max_files": "cache-size",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newResolveCmd(a),
		newChainCmd(a),
		newFindCmd(a),
		newIndexCmd(a),
		newServeCmd(a),
		newCatalogCmd(a),
		newInitCmd(a),
		newSetupCmd(a),
		newVersionCmd(),
	)
	return root
}

// initConfig layers the config file, WIDGETSPEC_* environment variables and
// flags, then builds the logger.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	setDefaults(v)

	v.SetEnvPrefix("WIDGETSPEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = util.NewLogger(util.ParseLoggerConfig(cfg.Log.Level, cfg.Log.Format, a.logOut))
	util.SetDefault(a.logger)
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "config", used, "command", cmd.Name())
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "widgetspec %s\n", version)
		},
	}
}
