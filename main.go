// =============================================================================
// Cart Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Cart Parser CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   cartparser parse [path]     - Parse a cart file and print the result
//   cartparser validate [path]  - List every validation error of a cart file
//   cartparser version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Schema, validation, line parsing and the cart parser
//   - pkg/           : Shared file utilities
//   - samples/       : The default cart source
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cart-parser/cmd"
)

func main() {
	cmd.Execute()
}
