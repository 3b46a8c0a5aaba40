package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of thoughts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "thoughts version %s\n", strings.TrimSpace(thoughts.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
