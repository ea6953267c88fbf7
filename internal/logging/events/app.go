package events

import "github.com/atomicstack/inkshell/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Save(err error) {
	payload := map[string]interface{}{"ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.save", payload)
}
