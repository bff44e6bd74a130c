package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hatc/internal/diagfmt"
	"hatc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.hat",
	Short: "Parse a source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.WriteText(os.Stderr, result.FileSet, result.Bag.Items(),
			diagfmt.Options{Color: useColor(cmd, os.Stderr)})
	}
	if result.Module == nil {
		return fmt.Errorf("%s did not parse", args[0])
	}

	diagfmt.WriteModule(os.Stdout, result.Module,
		diagfmt.Options{Color: useColor(cmd, os.Stdout)})
	return nil
}
