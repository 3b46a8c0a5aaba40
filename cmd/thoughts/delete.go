package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a thought",
	Long:    `Delete removes the thought with the given id. Unknown ids are ignored.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		nb, err := openNotebook()
		if err != nil {
			return err
		}
		defer nb.Close()

		if !nb.Remove(id) {
			slog.Debug("no thought with id", "id", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
