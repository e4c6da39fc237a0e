package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pl0/internal/driver"
	"pl0/internal/obj"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file.pl0",
	Short: "Compile a source file to an object file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "object file path (default: source path with "+obj.Ext+")")
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	res, cfg, err := compileFile(cmd, path, false)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = cfg.Build.Output
	}
	if out == "" {
		out = strings.TrimSuffix(path, driver.SourceExt) + obj.Ext
	}
	if err := obj.Write(out, res.Words); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}
