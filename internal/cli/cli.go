// Package cli implements the brainboard command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/buildinfo"
	"github.com/matzehuels/brainboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "brainboard"

	// cliUser is the user id the CLI acts as on boards.
	cliUser = "cli"

	// connectTimeout bounds opening a remote store.
	connectTimeout = 10 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Brainboard runs collaborative brainstorming boards",
		Long:          `Brainboard manages boards of idea cards and arranges them into Combinaison, Raffinement and Moscow templates, from the command line or over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			level := cfg.logLevel()
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/brainboard/config.toml)")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Access
// =============================================================================

// openRegistry opens the configured store and wraps it in a registry. The
// caller closes the registry.
func (c *CLI) openRegistry(ctx context.Context) (*board.Registry, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return board.NewRegistry(st, c.Logger), nil
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg := c.config.Store
	if !cfg.remote() {
		return openStore(ctx, cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	spinner := newSpinner(ctx, os.Stderr, "Connecting to "+cfg.Backend+"...")
	spinner.Start()
	st, err := openStore(ctx, cfg)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", cfg.Backend)
	return st, nil
}
