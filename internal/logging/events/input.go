package events

import "github.com/atomicstack/inkshell/internal/logging"

type InputTracer struct{}

type ScreenshotTracer struct{}

var (
	Input      = InputTracer{}
	Screenshot = ScreenshotTracer{}
)

func (InputTracer) Key(code, kind string) {
	logging.Trace("input.key", map[string]interface{}{"code": code, "kind": kind})
}

func (InputTracer) KeyDropped(code string) {
	logging.Trace("input.key-dropped", map[string]interface{}{"code": code})
}

func (InputTracer) Quit(code string) {
	logging.Trace("input.quit", map[string]interface{}{"code": code})
}

func (InputTracer) Gesture(desc string) {
	logging.Trace("input.gesture", map[string]interface{}{"gesture": desc})
}

func (InputTracer) RawDropped(id int) {
	logging.Trace("input.raw-dropped", map[string]interface{}{"finger": id})
}

func (InputTracer) QueueFull(producer string) {
	logging.Trace("input.queue-full", map[string]interface{}{"producer": producer})
}

func (ScreenshotTracer) Saved(path string) {
	logging.Trace("screenshot.saved", map[string]interface{}{"path": path})
}

func (ScreenshotTracer) Failed(path string, err error) {
	logging.Trace("screenshot.failed", map[string]interface{}{"path": path, "error": err.Error()})
}
