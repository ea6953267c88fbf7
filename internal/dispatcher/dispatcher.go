// Package dispatcher implements the run loop: the single consumer of the
// main event queue and the only code that mutates the view stack, the
// update tracker and the shared context.
package dispatcher

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/atomicstack/inkshell/internal/backend"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/logging"
	"github.com/atomicstack/inkshell/internal/logging/events"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/platform"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/telemetry"
	"github.com/atomicstack/inkshell/internal/updates"
	"github.com/atomicstack/inkshell/internal/view"
	"github.com/atomicstack/inkshell/internal/view/frontlight"
	"github.com/atomicstack/inkshell/internal/view/menu"
	"github.com/atomicstack/inkshell/internal/view/notification"
	"github.com/atomicstack/inkshell/internal/view/reader"
)

// ScreenshotPattern is the strftime layout of screenshot file names.
const ScreenshotPattern = "screenshot-%Y%m%d_%H%M%S.png"

// Opener builds the top-level view for a document.
type Opener func(info metadata.Info, ctx *state.Context) (view.View, error)

// OpenReader opens info in a reading view.
func OpenReader(info metadata.Info, ctx *state.Context) (view.View, error) {
	r, err := reader.New(info, ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// RawSink receives finger events on their way to the gesture recognizer.
type RawSink interface {
	SendRaw(evt input.DeviceEvent) bool
}

// Options tune the loop.
type Options struct {
	// PollTimeout bounds each platform poll.
	PollTimeout time.Duration
	// DrainTimeout bounds the wait for each main-queue item.
	DrainTimeout time.Duration
	Opener       Opener
	// Observer, when set, receives a Status after handled events, at most
	// once per StatusInterval, and once more when the loop goes idle.
	Observer       func(Status)
	StatusInterval time.Duration
	Tracer         oteltrace.Tracer
}

// DefaultOptions returns 20ms poll and drain timeouts and the reading view
// opener.
func DefaultOptions() Options {
	return Options{
		PollTimeout:    20 * time.Millisecond,
		DrainTimeout:   20 * time.Millisecond,
		Opener:         OpenReader,
		StatusInterval: 50 * time.Millisecond,
	}
}

// Status is a snapshot of the dispatcher published to the observer.
type Status struct {
	Active      view.ID
	Depth       int
	Overlays    []view.ID
	Outstanding int
	Inverted    bool
	Monochrome  bool
	LastEvent   string
	LastUpdate  framebuffer.UpdateInfo
	Handled     uint64
	Dropped     uint64
}

// Dispatcher owns the view stack, the update tracker and the context.
type Dispatcher struct {
	ctx     *state.Context
	fb      framebuffer.Framebuffer
	stack   *view.Stack
	tracker *updates.Tracker
	queue   *backend.Queue
	source  platform.Source
	raw     RawSink
	opts    Options

	tracer   oteltrace.Tracer
	throttle *backend.Throttle
	runCtx   context.Context

	handled    uint64
	lastEvent  string
	lastUpdate framebuffer.UpdateInfo
	dirty      bool
}

// New returns a dispatcher with root as the active view. Views receive
// queue as their Hub.
func New(ctx *state.Context, fb framebuffer.Framebuffer, root view.View, queue *backend.Queue, source platform.Source, raw RawSink, opts Options) *Dispatcher {
	if opts.Opener == nil {
		opts.Opener = OpenReader
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Noop()
	}
	return &Dispatcher{
		ctx:      ctx,
		fb:       fb,
		stack:    view.NewStack(root),
		tracker:  updates.New(),
		queue:    queue,
		source:   source,
		raw:      raw,
		opts:     opts,
		tracer:   tracer,
		throttle: backend.NewThrottle(opts.StatusInterval),
		runCtx:   context.Background(),
	}
}

// Stack exposes the view stack.
func (d *Dispatcher) Stack() *view.Stack {
	return d.stack
}

// Tracker exposes the update tracker.
func (d *Dispatcher) Tracker() *updates.Tracker {
	return d.tracker
}

// Run loops until a quit is requested or ctx is done. Each iteration polls
// the platform once, then drains the main queue.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.runCtx = ctx
	for {
		if ctx.Err() != nil {
			events.App.Stop("signal")
			return nil
		}
		if quit := d.poll(); quit {
			return nil
		}
		if quit := d.Drain(d.opts.DrainTimeout); quit {
			events.App.Stop("select")
			return nil
		}
		if d.dirty {
			d.publish()
		}
	}
}

func (d *Dispatcher) poll() bool {
	pe, ok := d.source.Poll(d.opts.PollTimeout)
	if !ok {
		return false
	}
	switch pe.Kind {
	case platform.Quit:
		events.App.Stop("platform")
		return true
	case platform.KeyDown:
		kind, outcome := input.MapKey(pe.Key)
		switch outcome {
		case input.Quit:
			events.Input.Quit(string(pe.Key))
			events.App.Stop("key")
			return true
		case input.Emit:
			events.Input.Key(string(pe.Key), kind.String())
			if !d.queue.Send(view.Key{Kind: kind}) {
				events.Input.QueueFull("keyboard")
			}
		default:
			events.Input.KeyDropped(string(pe.Key))
		}
	case platform.Pointer:
		if d.raw != nil {
			d.raw.SendRaw(pe.Device)
		}
	}
	return false
}

// Drain handles queued events until none arrives within timeout. It
// reports whether one of them asked to quit.
func (d *Dispatcher) Drain(timeout time.Duration) bool {
	for {
		evt, ok := d.queue.Receive(timeout)
		if !ok {
			return false
		}
		if d.Handle(evt) {
			return true
		}
	}
}

// Handle dispatches one event and puts the follow-ups it produced at the
// head of the queue, in order. It reports whether the event asked to quit.
func (d *Dispatcher) Handle(evt view.Event) bool {
	detail := view.Describe(evt)
	_, span := d.tracer.Start(d.runCtx, "dispatch "+evt.Name(),
		oteltrace.WithAttributes(
			attribute.String("inkshell.event", evt.Name()),
			attribute.String("inkshell.detail", detail),
			attribute.Int("inkshell.depth", d.stack.Depth()),
		))
	defer span.End()
	events.Dispatch.Event(evt.Name(), detail)

	var bus view.Bus
	quit := d.dispatch(evt, &bus)

	followUps := bus.Drain()
	d.queue.PushFront(followUps...)
	events.Dispatch.Flush(len(followUps))
	span.SetAttributes(attribute.Int("inkshell.follow_ups", len(followUps)))

	d.handled++
	d.lastEvent = detail
	d.dirty = true
	if d.opts.Observer != nil && d.throttle.Allow() {
		d.publish()
	}
	return quit
}

func (d *Dispatcher) dispatch(evt view.Event, bus *view.Bus) bool {
	switch e := evt.(type) {
	case view.Render:
		d.wait(e.Rect)
		d.render(e.Rect, e.Mode)
	case view.RenderNoWait:
		d.render(e.Rect, e.Mode)
	case view.Expose:
		d.expose(e.Rect)
	case view.Open:
		d.open(e.Info, bus)
	case view.Back:
		popped := d.stack.Pop()
		events.Stack.Pop(d.stack.Active().ID().String(), d.stack.Depth(), popped)
		d.deliver(evt, bus)
	case view.Show:
		d.show(e.ID, bus)
	case view.Close:
		d.close(e.ID, bus)
	case view.Select:
		return d.selectEntry(e, bus)
	default:
		d.deliver(evt, bus)
	}
	return false
}

func (d *Dispatcher) deliver(evt view.Event, bus *view.Bus) {
	if !view.HandleEvent(d.stack.Active(), evt, d.queue, bus, d.ctx) {
		events.Dispatch.Unhandled(evt.Name())
	}
}

// wait blocks on every outstanding update overlapping rect and forgets it.
func (d *Dispatcher) wait(rect image.Rectangle) {
	for _, entry := range d.tracker.Overlapping(rect) {
		status, err := d.fb.Wait(entry.Token)
		if err != nil {
			logging.Error(fmt.Errorf("wait for update %d: %w", entry.Token, err))
		}
		events.Display.Wait(uint32(entry.Token), status)
		d.tracker.Forget(entry.Token)
	}
}

func (d *Dispatcher) render(rect image.Rectangle, mode framebuffer.UpdateMode) {
	view.RenderTree(d.stack.Active(), rect, d.fb, d.ctx.Fonts)
	d.update(rect, mode)
}

func (d *Dispatcher) expose(rect image.Rectangle) {
	d.wait(rect)
	view.FillCrack(d.stack.Active(), rect, d.fb, d.ctx.Fonts)
	d.update(rect, framebuffer.Gui)
}

func (d *Dispatcher) update(rect image.Rectangle, mode framebuffer.UpdateMode) {
	tok, err := d.fb.Update(rect, mode)
	if err != nil {
		logging.Error(err)
		events.Display.UpdateFailed(rect, err)
		return
	}
	if err := d.tracker.Register(tok, rect); err != nil {
		logging.Error(err)
		return
	}
	d.lastUpdate = framebuffer.UpdateInfo{Token: tok, Rect: rect, Mode: mode}
	events.Display.Update(uint32(tok), rect, mode.String())
}

func (d *Dispatcher) open(info metadata.Info, bus *view.Bus) {
	v, err := d.opts.Opener(info, d.ctx)
	if err != nil {
		logging.Error(fmt.Errorf("open %s: %w", info.File.Path, err))
		events.Stack.OpenFailed(info.File.Path, err)
		d.deliver(view.Invalid{Info: info}, bus)
		return
	}
	d.stack.Push(v)
	events.Stack.Push(v.ID().String(), d.stack.Depth())
	bus.Push(view.Render{Rect: v.Rect(), Mode: framebuffer.Full})
}

func (d *Dispatcher) show(id view.ID, bus *view.Bus) {
	active := d.stack.Active()
	if id.IsSingleton() {
		if _, ok := view.Locate(active, id.Kind); ok {
			events.Overlay.Skip(id.String(), "present")
			return
		}
	}

	var overlay view.View
	switch id.Kind {
	case view.KindMainMenu:
		overlay = menu.New(d.ctx)
	case view.KindFrontlight:
		if !d.ctx.Settings.Frontlight {
			events.Overlay.Skip(id.String(), "disabled")
			return
		}
		overlay = frontlight.New(d.ctx)
	default:
		events.Overlay.Skip(id.String(), "unknown")
		return
	}
	view.AddChild(active, overlay)
	events.Overlay.Show(id.String())
	bus.Push(view.Render{Rect: overlay.Rect(), Mode: framebuffer.Gui})
}

func (d *Dispatcher) close(id view.ID, bus *view.Bus) {
	active := d.stack.Active()
	var (
		index int
		ok    bool
	)
	if id.IsSingleton() {
		index, ok = view.Locate(active, id.Kind)
	} else {
		index, ok = view.LocateByID(active, id)
	}
	if !ok {
		events.Overlay.Skip(id.String(), "absent")
		return
	}

	exposed := view.OverlappingRect(active, index)
	removed := view.RemoveChild(active, index)
	if s, ok := removed.(interface{ Stop() }); ok {
		s.Stop()
	}
	events.Overlay.Close(id.String(), exposed)

	bus.Push(view.Expose{Rect: exposed})
	for _, sibling := range view.Overlapping(active, removed.Rect(), -1) {
		bus.Push(view.Render{Rect: sibling.Rect(), Mode: framebuffer.Gui})
	}
}

func (d *Dispatcher) selectEntry(sel view.Select, bus *view.Bus) bool {
	switch sel.Entry {
	case view.EntryToggleInverted:
		d.ctx.Inverted = !d.ctx.Inverted
		d.fb.ToggleInverted()
		events.Display.Toggle("inverted", d.ctx.Inverted)
		bus.Push(view.Render{Rect: d.fb.Rect(), Mode: framebuffer.Full})
	case view.EntryToggleMonochrome:
		d.ctx.Monochrome = !d.ctx.Monochrome
		d.fb.ToggleMonochrome()
		events.Display.Toggle("monochrome", d.ctx.Monochrome)
		bus.Push(view.Render{Rect: d.fb.Rect(), Mode: framebuffer.Full})
	case view.EntryTakeScreenshot:
		d.screenshot(bus)
	case view.EntryFrontlight:
		bus.Push(view.Show{ID: view.Singleton(view.KindFrontlight)})
	case view.EntryQuit:
		return true
	default:
		d.deliver(sel, bus)
	}
	return false
}

func (d *Dispatcher) screenshot(bus *view.Bus) {
	name := strftime.Format(ScreenshotPattern, d.ctx.Clock())
	path := filepath.Join(d.ctx.ScreenshotDir, name)

	var msg string
	if err := d.fb.Save(path); err != nil {
		logging.Error(fmt.Errorf("take screenshot: %w", err))
		events.Screenshot.Failed(path, err)
		msg = fmt.Sprintf("Couldn't take screenshot: %v.", err)
	} else {
		events.Screenshot.Saved(path)
		msg = fmt.Sprintf("Saved %s.", name)
		if fi, err := os.Stat(path); err == nil {
			msg = fmt.Sprintf("Saved %s (%s).", name, humanize.Bytes(uint64(fi.Size())))
		}
	}

	n := notification.New(msg, d.ctx.NextNotificationIndex(), d.queue, d.ctx)
	view.AddChild(d.stack.Active(), n)
	events.Overlay.Show(n.ID().String())
	bus.Push(view.Render{Rect: n.Rect(), Mode: framebuffer.Gui})
}

// Snapshot returns the current status.
func (d *Dispatcher) Snapshot() Status {
	active := d.stack.Active()
	children := active.Children()
	overlays := make([]view.ID, 0, len(children))
	for _, child := range children {
		overlays = append(overlays, child.ID())
	}
	return Status{
		Active:      active.ID(),
		Depth:       d.stack.Depth(),
		Overlays:    overlays,
		Outstanding: d.tracker.Len(),
		Inverted:    d.ctx.Inverted,
		Monochrome:  d.ctx.Monochrome,
		LastEvent:   d.lastEvent,
		LastUpdate:  d.lastUpdate,
		Handled:     d.handled,
		Dropped:     d.queue.Dropped(),
	}
}

func (d *Dispatcher) publish() {
	d.dirty = false
	if d.opts.Observer == nil {
		return
	}
	d.opts.Observer(d.Snapshot())
}
