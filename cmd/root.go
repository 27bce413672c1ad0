package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/config"
	"github.com/zjrosen/almanac/internal/ingredient"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/presentation"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	jsonFlag  bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Browse and search game ingredients and recipes",
	Long: `Almanac loads item, fluid and recipe data packs and answers questions like
"what can I make from this" and "how do I make that".

Ingredients are addressed by uid, for example minecraft:oak_log or
minecraft:enchanted_book:[minecraft:sharpness.5].`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initLogging()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/almanac/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by ALMANAC_DEBUG)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false,
		"print results as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("locale", defaults.Locale)
	viper.SetDefault("filter.modes", defaults.Filter.Modes)
	viper.SetDefault("filter.sort", defaults.Filter.Sort)
	viper.SetDefault("bookmarks.path", defaults.Bookmarks.Path)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("metrics.listen", defaults.Metrics.Listen)
	for name, on := range defaults.Flags {
		viper.SetDefault("flags."+name, on)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .almanac/config.yaml (current directory)
		// 2. ~/.config/almanac/config.yaml (user config)
		if _, err := os.Stat(".almanac/config.yaml"); err == nil {
			viper.SetConfigFile(".almanac/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "almanac"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at ~/.config/almanac/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
	cfg.ExpandPaths()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".almanac", "config.yaml")
	}
	return filepath.Join(home, ".config", "almanac", "config.yaml")
}

// configPath is the file settings are saved to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath()
}

func initLogging() error {
	if os.Getenv("ALMANAC_DEBUG") == "" && !debugFlag && !cfg.Debug {
		log.SetEnabled(false)
		return nil
	}
	logPath := os.Getenv("ALMANAC_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	if _, err := log.Init(logPath); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Almanac starting", "version", version, "config", viper.ConfigFileUsed())
	return nil
}

// loadApp validates the configuration and loads the runtime.
func loadApp(ctx context.Context, opts ...app.Option) (*app.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading data packs: %w", err)
	}
	for _, f := range a.Failures {
		fmt.Fprintf(os.Stderr, "warning: %v\n", f)
	}
	return a, nil
}

func formatter() *presentation.Formatter {
	return presentation.NewFormatter(os.Stdout, jsonFlag)
}

// resolve finds a registered ingredient by uid, trying every ingredient type.
func resolve(a *app.App, uid string) (ingredient.AnyTyped, error) {
	for _, t := range a.Ingredients.RegisteredTypes() {
		if typed, ok := a.Ingredients.TypedByUIDAny(t.UID(), uid); ok {
			return typed, nil
		}
	}
	if suggestions := a.Filter.Suggest(uid, 3); len(suggestions) > 0 {
		return nil, fmt.Errorf("unknown ingredient %q (did you mean %v?)", uid, suggestions)
	}
	return nil, fmt.Errorf("unknown ingredient %q", uid)
}

func describe(a *app.App, t ingredient.AnyTyped) (presentation.IngredientDTO, error) {
	d, err := a.Ingredients.Describe(t)
	if err != nil {
		return presentation.IngredientDTO{}, err
	}
	dto := presentation.FromDescription(d, a.ModName(d.ModID))
	dto.Hidden = !a.Filter.IsVisible(t)
	return dto, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
