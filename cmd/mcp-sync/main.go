package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vlazic/mcp-sync/internal/clients"
	"github.com/vlazic/mcp-sync/internal/config"
	"github.com/vlazic/mcp-sync/internal/services"
)

// Version is set at build time.
var Version = "dev"

var (
	configPath   string
	sourceClient string
	dryRun       bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "mcp-sync",
	Short: "Synchronize MCP server definitions across AI client configs",
	Long: `mcp-sync discovers the MCP server entries configured in each supported
AI client (Claude Desktop, Cursor, Windsurf, Cline, Gemini CLI, Codex,
OpenCode), merges them into one canonical set, and writes that set back
to every client in its native config format.

Merging is additive and deterministic: when two clients define the same
server differently, the client listed first in the roster wins and a
warning is printed. Non-MCP content of every config file is preserved.

Examples:
  # Merge all clients and sync them
  mcp-sync

  # Preview without writing
  mcp-sync --dry-run

  # Treat Cursor's config as authoritative
  mcp-sync --source cursor`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show each client's config state and its MCP servers",
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to mcp-sync config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "list individual server names while syncing")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing any file")
	rootCmd.Flags().StringVarP(&sourceClient, "source", "s", "", "treat this client's config as authoritative instead of merging")
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	// Validate the selector against the static roster before any file is
	// read or written.
	if sourceClient != "" && !clients.Known(sourceClient) {
		return fmt.Errorf("unknown source client '%s' (known clients: %s)",
			sourceClient, strings.Join(clients.KnownNames(), ", "))
	}

	sync, logger, err := buildSyncService()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	return sync.Run(services.Options{Source: sourceClient, DryRun: dryRun})
}

func runList(cmd *cobra.Command, args []string) error {
	sync, logger, err := buildSyncService()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	for _, state := range sync.LoadAll() {
		switch {
		case !state.Exists:
			fmt.Printf("%-16s not found        %s\n", state.Name, state.Path)
		case !state.Usable():
			fmt.Printf("%-16s unreadable       %s\n", state.Name, state.Path)
		default:
			fmt.Printf("%-16s %d server(s)      %s\n", state.Name, len(state.Servers), state.Path)
			for _, name := range state.Servers.SortedNames() {
				fmt.Printf("    %s\n", name)
			}
		}
	}
	return nil
}

func buildSyncService() (*services.SyncService, *zap.Logger, error) {
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	for name := range cfg.Clients {
		if !clients.Known(name) {
			logger.Warn("ignoring unknown client in config file", zap.String("client", name))
		}
	}

	roster := clients.Registry(logger, clients.Options{
		Paths:    cfg.PathOverrides(),
		Disabled: cfg.DisabledClients(),
	})
	return services.NewSyncService(roster, logger), logger, nil
}

// newLogger builds the console reporter. Verbose mode keeps debug events
// (per-server listings); the default level is info.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}
