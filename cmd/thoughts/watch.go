package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts/pkg/adapters/lifecycle"
	"github.com/aretw0/thoughts/pkg/view"
)

var watchSearch string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show thoughts and refresh when they change on disk",
	Long: `Watch renders the list and renders it again every time another
process changes the stored thoughts. Only the fs adapter can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	nb, err := openNotebook()
	if err != nil {
		return err
	}
	defer nb.Close()

	events, err := nb.Watch(ctx)
	if err != nil {
		return fmt.Errorf("cannot watch: %w", err)
	}

	out := cmd.OutOrStdout()
	render := func() {
		if err := view.RenderList(out, nb.Search(watchSearch), view.RenderOptions{}); err != nil {
			slog.Warn("failed to render thoughts", "error", err)
		}
	}
	render()

	src := lifecycle.NewSource(events)
	if err := src.Start(ctx); err != nil {
		return err
	}
	for e := range src.Events() {
		slog.Debug("thoughts changed", "event", e.String())
		fmt.Fprintln(out, "---")
		render()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "Only show thoughts matching this query")
}
