package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tailored-agentic-units/toolagents/dataset"
	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/observability"
	"github.com/tailored-agentic-units/toolagents/tools/serper"
)

// options holds the global flags and the configuration they resolve to.
type options struct {
	configFile    string
	dir           string
	user          string
	session       string
	maxIterations int
	verbose       bool
	raw           bool
	logLevel      string
	observers     []string

	sink    observability.Observer
	kernel  *kernel.Config
	dataset dataset.Config
	serper  serper.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "toolagents",
		Short: "Exploratory data analysis and news agents backed by tool calling.",
		Long: `toolagents summarizes CSV files locally and runs two tool-calling agents:
an EDA agent that explains a CSV file and a news agent that answers questions
from Serper news search results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default ./toolagents.{yaml,json,toml} or $HOME/.config/toolagents/)")
	flags.StringVarP(&opts.dir, "dir", "d", "", "dataset directory (overrides config)")
	flags.StringVarP(&opts.user, "user", "u", "", "session user id (overrides config)")
	flags.StringVarP(&opts.session, "session", "s", "", "session id (overrides config)")
	flags.IntVar(&opts.maxIterations, "max-iterations", -1, "maximum loop iterations; 0 for unlimited (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log kernel events to stderr")
	flags.BoolVarP(&opts.raw, "raw", "r", false, "print answers without markdown rendering")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "lowest kernel event level logged: debug, info, warn or error")
	flags.StringSliceVar(&opts.observers, "observer", []string{"slog"}, "observers receiving kernel events ("+strings.Join(observability.ObserverNames(), ", ")+")")

	cmd.AddCommand(
		newSummarizeCmd(opts),
		newEDACmd(opts),
		newNewsCmd(opts),
		newAppsCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// load reads .env, resolves the event sink, reads the config file and
// environment overrides, then applies the flags.
func (o *options) load(cmd *cobra.Command) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	level, err := observability.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose || misc.Truthy(os.Getenv("DEBUG")) {
		o.verbose = true
		level = observability.LevelVerbose
	}
	if level < observability.LevelWarning {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level.SlogLevel(),
		})))
	}

	sink, err := observability.Resolve(o.observers...)
	if err != nil {
		return err
	}
	o.sink = observability.MinLevel(level, sink)

	v := kernel.NewViper()
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName("toolagents")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "toolagents"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := kernel.Decode(v)
	if err != nil {
		return err
	}

	o.dataset = dataset.DefaultConfig()
	var ds dataset.Config
	if err := v.UnmarshalKey("dataset", &ds); err != nil {
		return fmt.Errorf("failed to decode dataset config: %w", err)
	}
	o.dataset.Merge(&ds)

	o.serper = serper.DefaultConfig()
	var sp serper.Config
	if err := v.UnmarshalKey("serper", &sp); err != nil {
		return fmt.Errorf("failed to decode serper config: %w", err)
	}
	o.serper.Merge(&sp)

	if o.dir != "" {
		o.dataset.Dir = o.dir
	}
	if o.user != "" {
		cfg.Session.UserID = o.user
	}
	if o.session != "" {
		cfg.Session.SessionID = o.session
	}
	if cmd.Flags().Changed("max-iterations") && o.maxIterations >= 0 {
		cfg.MaxIterations = o.maxIterations
	}

	o.kernel = cfg
	return nil
}

// loadDotEnv exports the variables in a dotenv file that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
