package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inkshell/internal/backend"
	"github.com/atomicstack/inkshell/internal/device"
	"github.com/atomicstack/inkshell/internal/dispatcher"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/logging"
	"github.com/atomicstack/inkshell/internal/logging/events"
	"github.com/atomicstack/inkshell/internal/platform"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/telemetry"
	"github.com/atomicstack/inkshell/internal/ui"
	"github.com/atomicstack/inkshell/internal/view"
	"github.com/atomicstack/inkshell/internal/view/home"
)

// Config describes user-provided application options.
type Config struct {
	SettingsPath        string
	Device              string
	Headless            bool
	ScreenshotDir       string
	NotificationTimeout time.Duration
	Init                bool
	RunID               string
}

const (
	queueCapacity  = 256
	sendTimeout    = 20 * time.Millisecond
	sourceCapacity = 256
)

// Run loads the persisted state, drives the dispatcher until a quit is
// requested and saves the state back. Load failures abort before anything
// is shown; a save failure is returned after both documents were
// attempted.
func Run(ctx context.Context, cfg Config, stdout io.Writer) error {
	if cfg.Init {
		if err := state.Init(cfg.SettingsPath); err != nil {
			return fmt.Errorf("initialise: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote default settings to %s.\n", cfg.SettingsPath)
		return nil
	}

	dev, err := device.Lookup(cfg.Device)
	if err != nil {
		return err
	}
	sctx, err := state.Load(dev, cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	sctx.ScreenshotDir = cfg.ScreenshotDir
	sctx.NotificationTimeout = cfg.NotificationTimeout

	fmt.Fprintf(stdout, "inkshell is running on a Kobo %s.\n", dev.Model)
	fmt.Fprintf(stdout, "The framebuffer resolution is %d by %d.\n", dev.Width, dev.Height)

	runErr := loop(ctx, cfg, sctx)

	saveErr := sctx.Save()
	events.App.Save(saveErr)
	return errors.Join(runErr, saveErr)
}

func loop(parent context.Context, cfg Config, sctx *state.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter, err := telemetry.New(ctx, cfg.RunID)
	if err != nil {
		logging.Error(fmt.Errorf("telemetry disabled: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := exporter.Shutdown(shutdownCtx); err != nil {
			logging.Error(fmt.Errorf("telemetry shutdown: %w", err))
		}
	}()

	fb := framebuffer.NewMemory(sctx.Device.Dims())
	queue := backend.NewQueue(queueCapacity, sendTimeout)
	mux := backend.Start(ctx, queue, backend.DefaultOptions())
	defer mux.Stop()

	source := platform.NewChannel(sourceCapacity)
	root := home.New(sctx)
	queue.Send(view.Render{Rect: sctx.Device.Rect(), Mode: framebuffer.Full})

	opts := dispatcher.DefaultOptions()
	opts.Tracer = exporter.Tracer()

	if cfg.Headless {
		d := dispatcher.New(sctx, fb, root, queue, source, mux, opts)
		return d.Run(ctx)
	}

	model := ui.NewModel(sctx.Device, source)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	opts.Observer = ui.Observer(program.Send, fb)
	d := dispatcher.New(sctx, fb, root, queue, source, mux, opts)

	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx)
		program.Quit()
	}()

	var uiErr error
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		uiErr = fmt.Errorf("terminal host: %w", err)
	}
	// The host may have exited first; make sure the loop follows.
	source.Push(platform.Event{Kind: platform.Quit}, time.Second)
	return errors.Join(uiErr, <-done)
}
