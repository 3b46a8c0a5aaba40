package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts/pkg/core"
)

var addCategory string

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a thought",
	Long: `Add a thought with the selected category.
With no text, or with "-", the thought is read from standard input,
which keeps embedded line breaks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			content = strings.TrimRight(string(data), "\r\n")
		}

		category := cfg.Category()
		if addCategory != "" {
			c, err := core.ParseCategory(addCategory)
			if err != nil {
				return err
			}
			category = c
		}

		nb, err := openNotebook()
		if err != nil {
			return err
		}
		defer nb.Close()

		t, ok := nb.Add(content, category)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing added: the thought is empty.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s]\n", t.ID, t.Category)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (Work, Personal, Study, Ideas, Tasks)")
}
