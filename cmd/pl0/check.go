package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pl0/internal/diagfmt"
	"pl0/internal/driver"
	"pl0/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.pl0|dir",
	Short: "Check sources without generating code",
	Long:  `Check parses and type-checks a source file, or every source file under a directory in parallel.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "parallel checks for directories (default: GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		_, _, err := compileFile(cmd, path, true)
		return err
	}

	cfg, err := project.ForDir(path)
	if err != nil {
		return err
	}
	maxDiag := cfg.Diagnostics.Max
	if flags := cmd.Root().PersistentFlags(); flags.Changed("max-diagnostics") {
		maxDiag, _ = flags.GetInt("max-diagnostics")
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	results, err := driver.CheckDir(cmd.Context(), path, driver.Options{MaxDiagnostics: maxDiag}, jobs)
	if err != nil {
		return err
	}

	printer := diagfmt.New(os.Stderr, useColor(cmd))
	errs := 0
	for _, res := range results {
		errs += printer.PrintAll(res.File, res.Bag)
	}
	if errs > 0 {
		return fmt.Errorf("%d error(s) in %d file(s)", errs, len(results))
	}
	cmd.Printf("checked %d file(s)\n", len(results))
	return nil
}
