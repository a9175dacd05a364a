package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/history"
	"github.com/rqpush/rqpush/internal/adapters/outbound/tui"
	"github.com/rqpush/rqpush/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		path       string
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, _, err := project(path)
			if err != nil {
				return err
			}

			// The history toggle governs recording only; past sends stay listable.
			records, err := history.New(absPath).Load()
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}

			if jsonOutput {
				if records == nil {
					records = []domain.SendRecord{}
				}
				return renderJSON(cmd, records)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N sends")
	return cmd
}
