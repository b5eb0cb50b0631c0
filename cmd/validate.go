// =============================================================================
// Cart Parser - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a cart file against
// the cart schema without parsing it.
//
// COMMAND USAGE:
//   cartparser validate [path]
//
// OUTPUT:
//   A numbered list of every header, row and cell error, or
//   "No validation errors." The command fails when any error is found.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/cart"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// newValidateCmd builds the 'validate' command.
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a cart file and list every error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.sourcePath(args)
			fm := a.fileManager()

			text, err := fm.ReadFile(source)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}

			errs := a.parser(fm).Validate(text)
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(validation.FormatErrors(errs), "\n"))

			if len(errs) > 0 {
				a.log.Debug("validation finished", "source", source, "errors", len(errs))
				return &cart.ValidationFailedError{Errors: errs}
			}
			return nil
		},
	}
}
