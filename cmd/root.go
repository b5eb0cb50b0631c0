// =============================================================================
// Cart Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'parse', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cartparser)
//   ├── parseCmd (cartparser parse)
//   ├── validateCmd (cartparser validate)
//   └── versionCmd (cartparser version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/cart"
	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/logger"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// SHARED STATE
// =============================================================================

// app holds what the root command prepares for its subcommands.
type app struct {
	// cfgFile is the path to the configuration file (--config).
	cfgFile string

	// verbose enables debug logging (--verbose).
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

// fileManager builds the file manager described by the configuration.
func (a *app) fileManager() *utils.FileManager {
	fm := utils.NewFileManager(a.cfg.OutputDir, a.cfg.ArchiveDir)
	fm.UseTimestampSubdirs = a.cfg.ArchiveTimestampSubdirs
	return fm
}

// parser builds a cart parser reading through fm.
func (a *app) parser(fm *utils.FileManager) *cart.Parser {
	return cart.New(fm,
		cart.WithDefaultPath(a.cfg.DefaultSource),
		cart.WithLogger(a.log),
	)
}

// sourcePath returns the path argument or the configured default source.
func (a *app) sourcePath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.DefaultSource
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "cartparser",
		Short: "Cart Parser - Validate and parse shopping cart CSV files",
		Long: `Cart Parser reads a shopping cart export (CSV or XLSX), validates every
header, row and cell against the cart schema, and turns valid files into a list
of items with a computed total.

Example Usage:
  cartparser parse                       # Parse the configured default source
  cartparser parse carts/today.csv       # Parse a specific file
  cartparser parse cart.csv --format xml # Print the result as XML
  cartparser validate cart.csv           # List every validation error`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(
		newParseCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// init loads the configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	a.log.Debug("configuration loaded", "config", a.cfgFile, "default_source", cfg.DefaultSource)

	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
