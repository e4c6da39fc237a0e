package main

import (
	"github.com/spf13/cobra"

	"pl0/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the toolchain version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(version.String())
		return nil
	},
}
