package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pl0/internal/diagfmt"
	"pl0/internal/driver"
	"pl0/internal/project"
)

// compileFile compiles one source file, printing its diagnostics to
// stderr. The project manifest next to the file supplies defaults the
// flags don't override.
func compileFile(cmd *cobra.Command, path string, checkOnly bool) (*driver.Result, *project.Config, error) {
	cfg, err := project.ForFile(path)
	if err != nil {
		return nil, nil, err
	}

	maxDiag := cfg.Diagnostics.Max
	if flags := cmd.Root().PersistentFlags(); flags.Changed("max-diagnostics") {
		maxDiag, _ = flags.GetInt("max-diagnostics")
	}

	res, err := driver.CompileFile(path, driver.Options{
		MaxDiagnostics: maxDiag,
		CheckOnly:      checkOnly,
	})
	if err != nil {
		return nil, nil, err
	}

	if res.Bag.Len() > 0 {
		diagfmt.New(os.Stderr, useColor(cmd)).PrintAll(res.File, res.Bag)
	}
	if n := res.Bag.ErrorCount(); n > 0 {
		return res, cfg, fmt.Errorf("%s: %d error(s)", path, n)
	}
	return res, cfg, nil
}
