package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qrforge/internal/config"
	"github.com/alexisbeaulieu97/qrforge/internal/logger"
	"github.com/alexisbeaulieu97/qrforge/internal/prefs"
)

// darkHint reports whether the terminal background is dark.
var darkHint = lipgloss.HasDarkBackground

// appContext holds what every command needs: configuration, preferences and a logger.
type appContext struct {
	cfg   *config.Config
	store *prefs.FileStore
	log   *logger.Logger
}

// loadApp reads configuration and opens the preference store. Interactive
// sessions log to a file because the view owns the terminal.
func loadApp(cmd *cobra.Command, flags *rootFlags, interactive bool) (*appContext, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	opts := logger.Options{Level: logLevel(flags, cfg), HumanReadable: true, Writer: cmd.ErrOrStderr()}
	if interactive {
		opts.File = cfg.Log.File
		if opts.File == "" {
			if opts.File, err = defaultLogPath(); err != nil {
				return nil, fmt.Errorf("failed to determine log path: %w", err)
			}
		}
	}
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	prefsPath, err := defaultPrefsPath()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to determine preferences path: %w", err)
	}
	store, err := prefs.NewFileStore(prefsPath, prefs.WithLogger(log))
	if err != nil {
		log.Error(err, "failed to open preferences", "path", prefsPath)
		_ = log.Close()
		return nil, err
	}

	return &appContext{cfg: cfg, store: store, log: log}, nil
}

func (a *appContext) close() {
	_ = a.log.Close()
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.configPath != "" {
		return config.ParseConfig(flags.configPath)
	}

	path, err := defaultConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	return config.Load(path)
}

func logLevel(flags *rootFlags, cfg *config.Config) string {
	switch {
	case flags.logLevel != "":
		return flags.logLevel
	case flags.verbose:
		return "debug"
	default:
		return cfg.Log.Level
	}
}
