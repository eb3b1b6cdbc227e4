package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/haskel/cpuwatch/internal/cli/tui"
	"github.com/haskel/cpuwatch/internal/config"
	"github.com/haskel/cpuwatch/internal/counters"
	"github.com/haskel/cpuwatch/internal/display"
	"github.com/haskel/cpuwatch/internal/logger"
	"github.com/haskel/cpuwatch/internal/monitor"
	"github.com/haskel/cpuwatch/internal/recorder"
	"github.com/haskel/cpuwatch/internal/server"
)

// dashboardOptions overrides the bubbletea program options; empty means
// the alternate screen on the controlling terminal.
var dashboardOptions []tea.ProgramOption

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("cpuwatch starting",
		"version", Version,
		"config", cfgFile,
		"source", cfg.Source.Kind,
		"display", cfg.Display.Mode,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, counters.CoreCount(), cmd.OutOrStdout(), log)
	if err != nil && cfg.Display.Mode == config.DisplayTUI {
		fmt.Fprintf(cmd.ErrOrStderr(), "diagnostics written to %s\n", diagnosticsPath(cfg))
	}
	return err
}

// diagnosticsPath is where TUI mode writes diagnostics, next to the usage log.
func diagnosticsPath(cfg *config.Config) string {
	path := cfg.Log.Path
	if path == "" {
		path = recorder.DefaultPath
	}
	return path + ".diag"
}

// newLogger builds the diagnostics logger. The dashboard owns the terminal,
// so in TUI mode diagnostics are appended to diagnosticsPath instead of
// stderr. The returned func closes that file.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.Display.Mode != config.DisplayTUI {
		return logger.New(cfg.Logging.Level, cfg.Logging.Format), func() error { return nil }, nil
	}

	path := diagnosticsPath(cfg)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create diagnostics directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open diagnostics log: %w", err)
	}

	return logger.NewWithWriter(f, cfg.Logging.Level, cfg.Logging.Format), f.Close, nil
}

// run wires the pipeline for cfg and blocks until it stops. Cancelling ctx
// is a graceful shutdown and returns nil. The usage log is closed only
// after every task has returned.
func run(ctx context.Context, cfg *config.Config, cores int, out io.Writer, log *slog.Logger) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rec, err := recorder.Open(cfg.Log.Path, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rec.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close usage log: %w", cerr))
		}
	}()

	var (
		presenter monitor.Sink
		dashboard *tui.Dashboard
	)
	switch cfg.Display.Mode {
	case config.DisplayPlain:
		presenter = display.NewTerminal(out)
	case config.DisplayTUI:
		dashboard = tui.NewDashboard(Version, cancel, dashboardOptions...)
		presenter = dashboard
	}

	store := monitor.NewStore(cores)
	pipeline := monitor.NewPipeline(store, newSource(cfg.Source), presenter, rec, log)
	pipeline.OnStateChange = func(from, to monitor.State) {
		log.Info("monitor state changed", "from", from.String(), "to", to.String())
	}

	if dashboard != nil {
		pipeline.AddTask(dashboard)
	}
	if cfg.Server.Enabled {
		pipeline.AddTask(server.New(cfg.Server, pipeline, log, Version))
	}

	log.Info("cpuwatch ready",
		"cores", cores,
		"log", rec.Path(),
	)

	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	log.Info("cpuwatch stopped", "entries", rec.Entries())
	return nil
}

func newSource(cfg config.SourceConfig) counters.Source {
	if cfg.Kind == config.SourceGopsutil {
		return counters.NewGopsutil()
	}
	return counters.NewProcStat(cfg.StatPath)
}
