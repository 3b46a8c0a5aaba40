package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts/pkg/core"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		def := cfg.Category()
		for _, c := range core.Categories() {
			marker := " "
			if c == def {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, c)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
