package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pl0/internal/obj"
	"pl0/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.pl0|file" + obj.Ext,
	Short: "Compile and execute a program",
	Long:  `Run compiles a source file and executes it, or executes a prebuilt object file directly.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("trace", false, "trace executed instructions to stderr")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	var words []int32
	trace, _ := cmd.Flags().GetBool("trace")

	if strings.HasSuffix(path, obj.Ext) {
		prog, err := obj.Read(path)
		if err != nil {
			return err
		}
		words = prog.Words
	} else {
		res, cfg, err := compileFile(cmd, path, false)
		if err != nil {
			return err
		}
		words = res.Words
		trace = trace || cfg.Build.Trace
	}

	var traceTo io.Writer
	if trace {
		traceTo = os.Stderr
	}
	m := vm.New(words, vm.Options{In: os.Stdin, Out: os.Stdout, Trace: traceTo})
	if err := m.Run(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
