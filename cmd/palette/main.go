// Command palette replays scripted painting sessions headlessly and writes
// the resulting images and recordings.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/palette"
	"github.com/gogpu/palette/internal/appconfig"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := submain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func submain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &app{stderr: stderr}
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		app.logger().Error("palette command failed", "err", err)
		return 1
	}
	return 0
}

// app carries state shared by subcommands after the root pre-run.
type app struct {
	configPath string
	cfg        appconfig.Config
	log        *slog.Logger
	stderr     io.Writer
}

func (a *app) logger() *slog.Logger {
	if a.log == nil {
		return slog.New(slog.NewTextHandler(a.stderr, nil))
	}
	return a.log
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := appconfig.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, _ := appconfig.ParseLevel(cfg.Log.Level)
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	palette.SetLogger(a.log)
	return nil
}

// newSession builds a session from the configuration with its brush and
// symmetry applied.
func (a *app) newSession(opts ...palette.Option) *palette.Session {
	all := append(a.cfg.SessionOptions(), palette.WithLogger(a.log))
	s := palette.NewSession(append(all, opts...)...)
	s.SetBrush(a.cfg.BrushState())
	s.SetSymmetry(a.cfg.SymmetryMode())
	return s
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "palette",
		Short:         "Layered raster painting engine driven by event scripts",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML); PALETTE_* env vars override")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newJournalCmd(a))
	root.AddCommand(newEncodersCmd())
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}
