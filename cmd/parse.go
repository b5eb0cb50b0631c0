// =============================================================================
// Cart Parser - Parse Command
// =============================================================================
//
// This file defines the 'parse' command, which runs the whole pipeline for a
// single cart file.
//
// COMMAND USAGE:
//   cartparser parse [path] [flags]
//
// FLAGS:
//   --format  : Output format (json, yaml, xml, xlsx); defaults to output_format
//   --out     : Write the result to this file instead of stdout
//   --save    : Write the result into output_dir with a generated name
//   --archive : Move the source into archive_dir after a successful parse
//
// PROCESSING PIPELINE:
//   1. Resolve the source (argument or default_source)
//   2. Read, validate and parse the cart
//   3. On validation errors: print every error, write an error log when
//      saving, and fail
//   4. Export the result
//   5. Archive the source when requested
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/cart"
	"github.com/ginjaninja78/cart-parser/internal/export"
	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// parseOptions holds the flags of the 'parse' command.
type parseOptions struct {
	format  string
	out     string
	save    bool
	archive bool
}

// newParseCmd builds the 'parse' command.
func newParseCmd(a *app) *cobra.Command {
	opts := &parseOptions{}

	parseCmd := &cobra.Command{
		Use:   "parse [path]",
		Short: "Parse a cart file and print its items and total",
		Long: `The parse command validates a cart file and, when it is valid, prints the
items (each with a fresh identifier) and the cart total.

On error:
  - Every validation error is listed on stderr
  - With --save, an error log is created in the output directory
  - The source file is never archived`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, opts, a.sourcePath(args))
		},
	}

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	parseCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (json, yaml, xml, xlsx)")
	parseCmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the result to this file")
	parseCmd.Flags().BoolVar(&opts.save, "save", false, "Write the result into the output directory")
	parseCmd.Flags().BoolVar(&opts.archive, "archive", false, "Archive the source after a successful parse")

	return parseCmd
}

// runParse executes the pipeline for one source.
func runParse(cmd *cobra.Command, a *app, opts *parseOptions, source string) error {
	format, err := resolveFormat(a, opts)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX && opts.out == "" && !opts.save {
		return fmt.Errorf("xlsx output needs --out or --save")
	}

	fm := a.fileManager()
	parser := a.parser(fm)

	a.log.Info("parsing cart", "source", source)

	result, err := parser.ParseContext(cmd.Context(), source)
	if err != nil {
		if errs, ok := cart.ValidationErrors(err); ok {
			return reportValidationErrors(cmd, a, fm, opts.save, source, errs, err)
		}
		return fmt.Errorf("failed to parse %s: %w", source, err)
	}

	write := func(w io.Writer) error {
		return export.Write(w, result, format)
	}

	switch {
	case opts.out != "":
		if err := writeFile(opts.out, write); err != nil {
			return err
		}
		a.log.Info("result written", "path", opts.out)
	case opts.save:
		name := fm.GenerateOutputFileName(a.cfg.OutputNameFormat, source, format.Extension())
		path, err := fm.WriteOutput(name, write)
		if err != nil {
			return err
		}
		a.log.Info("result written", "path", path)
	default:
		if err := write(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if opts.archive {
		archived, err := fm.ArchiveInputFile(source)
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", source, err)
		}
		a.log.Info("source archived", "path", archived)
	}

	return nil
}

// resolveFormat picks the output format: --format, then the --out
// extension, then the configured format.
func resolveFormat(a *app, opts *parseOptions) (export.Format, error) {
	if opts.format != "" {
		return export.ParseFormat(opts.format)
	}
	if opts.out != "" {
		if format, err := export.FormatFromPath(opts.out); err == nil {
			return format, nil
		}
	}
	return export.ParseFormat(a.cfg.OutputFormat)
}

// reportValidationErrors prints every validation error and returns err.
func reportValidationErrors(cmd *cobra.Command, a *app, fm *utils.FileManager, save bool, source string, errs []validation.ValidationError, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s", source, validation.FormatErrors(errs))

	if save {
		path, logErr := fm.WriteErrorLog(source, errs)
		if logErr != nil {
			a.log.Error("failed to write error log", "error", logErr)
		} else {
			a.log.Info("error log written", "path", path)
		}
	}

	return err
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
