package events

import (
	"image"

	"github.com/atomicstack/inkshell/internal/logging"
)

type DispatchTracer struct{}

type StackTracer struct{}

type OverlayTracer struct{}

type DisplayTracer struct{}

var (
	Dispatch = DispatchTracer{}
	Stack    = StackTracer{}
	Overlay  = OverlayTracer{}
	Display  = DisplayTracer{}
)

func (DispatchTracer) Event(name, detail string) {
	logging.Trace("dispatch.event", map[string]interface{}{"event": name, "detail": detail})
}

func (DispatchTracer) Unhandled(name string) {
	logging.Trace("dispatch.unhandled", map[string]interface{}{"event": name})
}

func (DispatchTracer) Flush(count int) {
	if count == 0 {
		return
	}
	logging.Trace("dispatch.flush", map[string]interface{}{"count": count})
}

func (StackTracer) Push(view string, depth int) {
	logging.Trace("stack.push", map[string]interface{}{"view": view, "depth": depth})
}

func (StackTracer) Pop(view string, depth int, popped bool) {
	logging.Trace("stack.pop", map[string]interface{}{"view": view, "depth": depth, "popped": popped})
}

func (StackTracer) OpenFailed(path string, err error) {
	logging.Trace("stack.open-failed", map[string]interface{}{"path": path, "error": err.Error()})
}

func (OverlayTracer) Show(id string) {
	logging.Trace("overlay.show", map[string]interface{}{"id": id})
}

func (OverlayTracer) Skip(id, reason string) {
	logging.Trace("overlay.skip", map[string]interface{}{"id": id, "reason": reason})
}

func (OverlayTracer) Close(id string, exposed image.Rectangle) {
	logging.Trace("overlay.close", map[string]interface{}{"id": id, "exposed": exposed.String()})
}

func (DisplayTracer) Update(token uint32, rect image.Rectangle, mode string) {
	logging.Trace("display.update", map[string]interface{}{"token": token, "rect": rect.String(), "mode": mode})
}

func (DisplayTracer) UpdateFailed(rect image.Rectangle, err error) {
	logging.Trace("display.update-failed", map[string]interface{}{"rect": rect.String(), "error": err.Error()})
}

func (DisplayTracer) Wait(token uint32, status int) {
	logging.Trace("display.wait", map[string]interface{}{"token": token, "status": status})
}

func (DisplayTracer) Toggle(name string, enabled bool) {
	logging.Trace("display.toggle", map[string]interface{}{"name": name, "enabled": enabled})
}
