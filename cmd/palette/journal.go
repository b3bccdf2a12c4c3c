package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/palette/internal/journal"
)

func newJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and replay event journals",
	}
	cmd.AddCommand(newJournalReplayCmd(a))
	cmd.AddCommand(newJournalListCmd())
	return cmd
}

func newJournalReplayCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "replay DB",
		Short: "Rebuild the canvas from a journal and export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := openJournal(args[0])
			if err != nil {
				return err
			}
			defer j.Close()

			s, n, err := replay(ctx, a, j)
			if err != nil {
				return err
			}
			out := firstNonEmpty(output, a.cfg.Export.Path)
			if err := s.ExportPNG(out); err != nil {
				return err
			}
			a.log.Info("journal replayed", "journal", args[0], "events", n, "output", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export path (default export.path from config)")
	return cmd
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list DB",
		Short: "Print the journaled events in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(args[0])
			if err != nil {
				return err
			}
			defer j.Close()

			w := cmd.OutOrStdout()
			return j.Replay(cmd.Context(), func(e journal.Entry) error {
				_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", e.Seq, e.RecordedAt.UTC().Format("2006-01-02T15:04:05.000Z"), e.Event.Op)
				return err
			})
		},
	}
}

// openJournal opens an existing journal; it refuses to create a new one.
func openJournal(path string) (*journal.Journal, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("journal %s does not exist", path)
	}
	return journal.Open(path)
}
