package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hatc/internal/diagfmt"
	"hatc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.hat",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file into its token stream`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.Tokenize(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.WriteText(os.Stderr, result.FileSet, result.Bag.Items(),
			diagfmt.Options{Color: useColor(cmd, os.Stderr)})
	}

	diagfmt.WriteTokens(os.Stdout, result.FileSet, result.Tokens,
		diagfmt.Options{Color: useColor(cmd, os.Stdout)})
	if result.Bag.HasErrors() {
		return fmt.Errorf("%d error(s)", result.Bag.Len())
	}
	return nil
}
