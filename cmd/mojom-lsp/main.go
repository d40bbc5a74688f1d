// Command mojom-lsp is the Language Server Protocol entry point for Mojom
// IDL files. It speaks framed JSON-RPC 2.0 over stdin/stdout; editors
// configure it directly as their mojom language server command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/logging"
	"github.com/GoogleChromeLabs/mojom-language-support/internal/server"
)

var rootCmd = &cobra.Command{
	Use:     "mojom-lsp",
	Version: "0.1.0",
	Short:   "Language Server Protocol server for Mojom IDL files",
	Long: `mojom-lsp serves diagnostics and go-to-definition for Mojom (.mojom)
files over the Language Server Protocol. Editors invoke it directly and
communicate over its stdin/stdout; configure it as the LSP command for the
mojom filetype.

Log verbosity is controlled by the MOJOM_LSP_LOG environment variable
(debug, info, warn, error); it defaults to warn.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	code, err := server.Start(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
