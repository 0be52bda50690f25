// Command memberdesk manages cooperative member records held by a remote
// member-storage API, from an interactive terminal UI or one-shot subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/adapters/restclient"
	"github.com/coopdesk/memberdesk/internal/app/desk"
	"github.com/coopdesk/memberdesk/internal/platform/config"
	"github.com/coopdesk/memberdesk/internal/platform/logging"
	"github.com/coopdesk/memberdesk/internal/tui"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	configPath string
	apiURL     string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "memberdesk",
		Short: "Manage cooperative member records",
		Long: `memberdesk lists, searches, adds, edits and deletes member records held by
a remote member-storage API.

Without a subcommand it opens the interactive terminal UI.

Examples:
  # Open the terminal UI against a local API
  memberdesk --api-url http://localhost:8080

  # Search from the shell
  memberdesk list --query ana`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: c.runTUI,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "member-storage API base URL (overrides config)")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive terminal UI (default)",
			Args:  cobra.NoArgs,
			RunE:  c.runTUI,
		},
		c.newListCmd(),
		c.newShowCmd(),
		c.newAddCmd(),
		c.newEditCmd(),
		c.newDeleteCmd(),
		c.newPrintCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	c.cfg = cfg

	newLogger := logging.New
	if cmd.Name() == "memberdesk" || cmd.Name() == "tui" {
		newLogger = logging.NewForTerminalUI
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	c.log = log
	return nil
}

// newScreen builds a desk over the configured remote store.
func (c *cli) newScreen() *desk.Screen {
	store := restclient.New(c.cfg.API.BaseURL,
		restclient.WithTimeout(c.cfg.API.Timeout),
		restclient.WithLogger(c.log.Named("restclient")),
	)
	return desk.New(store, desk.WithLogger(c.log.Named("desk")))
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	model := tui.NewModel(cmd.Context(), c.newScreen(), c.log.Named("tui"))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
