package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts/pkg/view"
)

var (
	listJSON   bool
	listSearch string
	listNoIDs  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List thoughts, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}
		defer nb.Close()

		found := nb.Search(listSearch)
		if listJSON {
			return view.RenderJSON(cmd.OutOrStdout(), found)
		}
		return view.RenderList(cmd.OutOrStdout(), found, view.RenderOptions{HideIDs: listNoIDs})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show thoughts whose text or category contains this")
	listCmd.Flags().BoolVar(&listNoIDs, "no-ids", false, "Hide thought ids")
}
