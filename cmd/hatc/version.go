package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hatc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(os.Stdout, "hatc %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(os.Stdout, "built: %s\n", version.BuildDate)
		}
		return nil
	},
}
