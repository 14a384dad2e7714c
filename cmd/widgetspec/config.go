package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/extractor"
	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/parser/queries"
	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/source"
	"github.com/gnana997/widgetspec/pkg/widget"
)

// configDir holds config.yaml, relative to the working directory.
const configDir = ".widgetspec"

// Config holds the contents of .widgetspec/config.yaml after environment
// variables and flags are applied.
type Config struct {
	LibraryRoot    string      `mapstructure:"library_root" yaml:"library_root"`
	StyleDefRoot   string      `mapstructure:"styledef_root" yaml:"styledef_root"`
	StyleDefSubdir string      `mapstructure:"styledef_subdir" yaml:"styledef_subdir"`
	RuntimeRoot    string      `mapstructure:"runtime_root" yaml:"runtime_root"`
	PackagePrefix  string      `mapstructure:"package_prefix" yaml:"package_prefix"`
	CatalogPath    string      `mapstructure:"catalog_path" yaml:"catalog_path,omitempty"`
	GenericBases   []string    `mapstructure:"generic_bases" yaml:"generic_bases,omitempty"`
	EventCallbacks []string    `mapstructure:"event_callbacks" yaml:"event_callbacks,omitempty"`
	Exclude        []string    `mapstructure:"exclude" yaml:"exclude,omitempty"`
	Log            LogConfig   `mapstructure:"log" yaml:"log"`
	LogFile        string      `mapstructure:"log_file" yaml:"log_file,omitempty"`
	Cache          CacheConfig `mapstructure:"cache" yaml:"cache"`
	Watch          bool        `mapstructure:"watch" yaml:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type CacheConfig struct {
	MaxFiles int `mapstructure:"max_files" yaml:"max_files"`
}

// defaultConfig is what `widgetspec init` writes and what unset keys fall
// back to.
func defaultConfig() Config {
	opts := widget.DefaultOptions()
	return Config{
		LibraryRoot:    ".",
		StyleDefSubdir: opts.StyleDefSubdir,
		PackagePrefix:  opts.PackagePrefix,
		Log:            LogConfig{Level: "info", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig()
	v.SetDefault("library_root", d.LibraryRoot)
	v.SetDefault("styledef_root", "")
	v.SetDefault("styledef_subdir", d.StyleDefSubdir)
	v.SetDefault("runtime_root", "")
	v.SetDefault("package_prefix", d.PackagePrefix)
	v.SetDefault("catalog_path", "")
	v.SetDefault("generic_bases", []string{})
	v.SetDefault("event_callbacks", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log_file", "")
	v.SetDefault("cache.max_files", 0)
	v.SetDefault("watch", false)
}

// loadConfig decodes the merged settings. Relative roots are made absolute
// against the working directory.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	for _, p := range []*string{&cfg.LibraryRoot, &cfg.StyleDefRoot, &cfg.RuntimeRoot} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return Config{}, fmt.Errorf("resolve %s: %w", *p, err)
		}
		*p = abs
	}
	return cfg, nil
}

func (c Config) engineOptions() widget.Options {
	opts := widget.DefaultOptions()
	opts.StyleDefRoot = c.StyleDefRoot
	if c.StyleDefSubdir != "" {
		opts.StyleDefSubdir = c.StyleDefSubdir
	}
	opts.RuntimeRoot = c.RuntimeRoot
	if c.PackagePrefix != "" {
		opts.PackagePrefix = c.PackagePrefix
	}
	opts.GenericBases = c.GenericBases
	opts.EventCallbacks = c.EventCallbacks
	return opts
}

func (c Config) excludes() []string {
	return append(append([]string(nil), search.DefaultExcludes...), c.Exclude...)
}

// writeConfig writes cfg as YAML to path. It refuses to overwrite.
func writeConfig(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadCatalog returns the catalog at path, or the bundled one when path is
// empty.
func loadCatalog(path string) (*catalog.QueryService, error) {
	if path == "" {
		return catalog.LoadAndQueryEmbedded()
	}
	return catalog.LoadAndQuery(path)
}

// components is the wired resolution stack for one command invocation.
type components struct {
	engine  *widget.Engine
	query   *catalog.QueryService
	cache   *source.CachedReader
	watcher *source.Watcher

	parsers *parser.ParserManager
	queries *queries.QueryManager
	logger  *slog.Logger
}

// buildComponents wires reader, extractor, catalog and engine from cfg.
// With watch set, cached source text is evicted as files change under the
// configured roots.
func buildComponents(cfg Config, watch bool, logger *slog.Logger) (*components, error) {
	qs, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cache, err := source.NewCachedReader(source.NewFileReader(logger), cfg.Cache.MaxFiles, logger)
	if err != nil {
		return nil, err
	}

	pm := parser.NewParserManager(logger)
	qm := queries.NewQueryManager(pm, logger)
	c := &components{
		query:   qs,
		cache:   cache,
		parsers: pm,
		queries: qm,
		logger:  logger,
	}
	c.engine = widget.NewEngine(cache, extractor.NewExtractor(pm, qm, logger), qs, cfg.engineOptions(), logger)

	if watch {
		w, err := source.NewWatcher(cache, source.DefaultWatchOptions(), logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		if err := w.Start(watchRoots(cfg)...); err != nil {
			_ = w.Stop()
			c.Close()
			return nil, err
		}
		c.watcher = w
	}
	return c, nil
}

func watchRoots(cfg Config) []string {
	var roots []string
	for _, r := range []string{cfg.LibraryRoot, cfg.StyleDefRoot, cfg.RuntimeRoot} {
		if r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

// Close stops the watcher and releases parser resources.
func (c *components) Close() {
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Warn("stopping watcher", "error", err)
		}
	}
	stats := c.cache.Stats()
	c.logger.Debug("source cache",
		"hits", stats.Hits,
		"misses", stats.Misses,
		"evictions", stats.Evictions,
		"size", stats.Size)
	_ = c.queries.Close()
	_ = c.parsers.Close()
}
