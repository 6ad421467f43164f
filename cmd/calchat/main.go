// Package main is the entry point for calchat: a terminal calendar with a
// chat pane, backed by a task/chat HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"calchat/internal/api"
	"calchat/internal/config"
	"calchat/internal/logging"
	"calchat/internal/notify"
	"calchat/internal/ui"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flag values.
var (
	serverURL  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "calchat",
	Short: "Terminal calendar and chat for your task server",
	Long: `calchat shows a month calendar of your tasks next to a chat with the
task server's assistant. Select a day to add or edit its task.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "task server base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/calchat/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newClient builds the API client described by cfg.
func newClient(cfg *config.Config) (*api.Client, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.Server.URL, api.WithTimeout(timeout))
}

// setupCLI prepares config, stderr logging and a client for the one-shot
// subcommands.
func setupCLI(cmd *cobra.Command) (*config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logging.SetupWriter(cmd.ErrOrStderr(), level)

	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cleanup, err := logging.Setup(cfg.Log.Path, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer cleanup()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	weekStart, _ := cfg.FirstWeekday()

	slog.Info("starting", "version", version, "server", client.BaseURL())

	styles := ui.NewStylesFromTheme(&cfg.Theme)
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		WeekStart:             weekStart,
		Mouse:                 cfg.UX.Mouse,
		ServerLabel:           client.BaseURL(),
	}
	if cfg.Notify.Enabled {
		n := notify.New(cfg.Notify.Sound)
		if !n.IsSupported() {
			slog.Warn("desktop notifications not supported here")
		}
		appCfg.Notifier = n
	}

	if err := ui.Run(client, styles, appCfg); err != nil {
		slog.Error("tui exited", "error", err)
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}
