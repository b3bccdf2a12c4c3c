package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/gogpu/palette"
	"github.com/gogpu/palette/internal/journal"
	"github.com/gogpu/palette/internal/script"
	"github.com/gogpu/palette/record"
)

type runOptions struct {
	output      string
	journalPath string
	record      bool
	recordPath  string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Apply an event script and export the canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), a, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "export path (default export.path from config)")
	cmd.Flags().StringVar(&opts.journalPath, "journal", "", "journal applied events to this SQLite database, replacing its previous run (default journal.path from config)")
	cmd.Flags().BoolVar(&opts.record, "record", false, "record the whole script")
	cmd.Flags().StringVar(&opts.recordPath, "record-output", "", "recording path (default recording.output from config)")
	return cmd
}

func runScript(ctx context.Context, a *app, path string, opts runOptions) (err error) {
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	for sc.Seed == 0 {
		sc.Seed = rand.Uint64()
	}
	s := a.newSession(sc.Options()...)

	journalPath := firstNonEmpty(opts.journalPath, a.cfg.Journal.Path)
	var j *journal.Journal
	if journalPath != "" {
		j, err = journal.Open(journalPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := j.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close journal: %w", cerr)
			}
		}()
		h := journal.Header{
			Canvas: script.Canvas{Width: s.Width(), Height: s.Height()},
			Seed:   sc.Seed,
		}
		if err := j.Begin(ctx, h); err != nil {
			return err
		}
	}

	if opts.record {
		scope, _ := record.ParseScope(a.cfg.Recording.Scope)
		s.StartRecording(scope)
		if !s.Recording() {
			a.log.Warn("recording unavailable", "encoder", a.cfg.Recording.Encoder)
		}
	}

	for i, ev := range sc.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := script.ApplyEvent(s, ev); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Op, err)
		}
		if j != nil {
			if _, err := j.Append(ctx, ev); err != nil {
				return err
			}
		}
	}

	if s.Recording() {
		if err := s.StopRecording(firstNonEmpty(opts.recordPath, a.cfg.Recording.Output)); err != nil {
			return err
		}
	}

	out := firstNonEmpty(opts.output, a.cfg.Export.Path)
	if err := s.ExportPNG(out); err != nil {
		return err
	}
	a.log.Info("script applied", "script", path, "events", len(sc.Events),
		"layers", s.Stack().Len(), "output", out)
	return nil
}

// replay rebuilds a session from a journal. Events that write files
// (exports, recordings) are skipped.
func replay(ctx context.Context, a *app, j *journal.Journal) (*palette.Session, int, error) {
	h, err := j.Header(ctx)
	if err != nil {
		return nil, 0, err
	}
	sc := script.Script{Canvas: h.Canvas, Seed: h.Seed}
	s := a.newSession(sc.Options()...)

	n := 0
	err = j.Replay(ctx, func(e journal.Entry) error {
		if !e.Event.Replayable() {
			a.log.Debug("journal event skipped", "seq", e.Seq, "op", e.Event.Op)
			return nil
		}
		if err := script.ApplyEvent(s, e.Event); err != nil {
			return fmt.Errorf("journal event %d (%s): %w", e.Seq, e.Event.Op, err)
		}
		n++
		return nil
	})
	return s, n, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
