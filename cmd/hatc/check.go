package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hatc/internal/diagfmt"
	"hatc/internal/driver"
	"hatc/internal/project"
	"hatc/internal/snapshot"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Run the full front end over a source tree",
	Long: `Check discovers every .hat file under the source root, parses and
resolves all modules and plans backend execution. Without an argument
the root comes from hat.toml, falling back to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = all CPUs)")
	checkCmd.Flags().Bool("timings", false, "show per-phase timings")
	checkCmd.Flags().String("emit-snapshot", "", "write the resolved project snapshot to a file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	var root string
	var err error
	if len(args) == 1 {
		root = args[0]
	} else {
		root, err = project.SourceRoot(".")
		if err != nil {
			return err
		}
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	res, err := driver.Check(cmd.Context(), root, driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
		Log:            log,
	})
	if err != nil {
		return err
	}

	if timings, _ := cmd.Flags().GetBool("timings"); timings {
		for _, p := range res.Timings.Phases {
			fmt.Fprintf(os.Stderr, "%-12s %7.2f ms %s\n", p.Name, p.DurationMS, p.Note)
		}
		fmt.Fprintf(os.Stderr, "%-12s %7.2f ms\n", "total", res.Timings.TotalMS)
	}

	res.Bag.Sort()
	if res.Bag.Len() > 0 {
		opts := diagfmt.Options{Color: useColor(cmd, os.Stderr)}
		diagfmt.WriteText(os.Stderr, res.FileSet, res.Bag.Items(), opts)
		diagfmt.Summary(os.Stderr, res.Bag, opts)
	}

	if out, _ := cmd.Flags().GetString("emit-snapshot"); out != "" && res.Mapped != nil {
		data, encErr := snapshot.Encode(res.Mapped, res.Schedule)
		if encErr != nil {
			return fmt.Errorf("snapshot: %w", encErr)
		}
		if writeErr := os.WriteFile(out, data, 0o644); writeErr != nil {
			return fmt.Errorf("snapshot: %w", writeErr)
		}
		log.Debugf("snapshot written to %s (%d bytes)", out, len(data))
	}

	if !res.Ok() {
		return fmt.Errorf("check failed")
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(os.Stdout, "ok: %d module(s)\n", len(res.Mapped.Modules))
	}
	return nil
}
