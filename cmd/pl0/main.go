package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pl0/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pl0",
	Short: "PL0 compiler and stack machine",
	Long:  `pl0 compiles PL0 source files to stack machine code and runs them.`,
}

func main() {
	rootCmd.Version = version.Number
	rootCmd.AddCommand(buildCmd, runCmd, checkCmd, tokenizeCmd, versionCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(os.Stderr))
}
