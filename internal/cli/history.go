package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"deepsearch/internal/config"
	"deepsearch/internal/history"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: auto-detect)")
		limit := flags.Int("limit", 20, "Maximum number of runs to list")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		resolvedPath, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if !cfg.History.Enabled {
			fmt.Fprintln(stderr, "History is disabled; set history.enabled: true in the config")
			return ExitError
		}
		root := config.RootFromConfigPath(resolvedPath)

		store, err := history.Open(resolveRootPath(root, cfg.History.DBPath))
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), *limit)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		if len(runs) == 0 {
			fmt.Fprintln(stdout, "No runs recorded yet.")
			return ExitOK
		}

		fmt.Fprintf(stdout, "%-20s  %-40s  %-14s  %s\n", "STARTED", "SUBJECT", "REPORT", "EVENTS")
		for _, run := range runs {
			report := run.ReportFile
			if !run.ReportFound {
				report = "(none)"
			}
			subject := run.Subject
			if len(subject) > 40 {
				subject = subject[:37] + "..."
			}
			fmt.Fprintf(stdout, "%-20s  %-40s  %-14s  %d\n",
				run.StartedAt.Format("2006-01-02 15:04:05"), subject, report, run.EventCount)
		}
		return ExitOK
	}
}
