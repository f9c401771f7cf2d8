package app

import (
	"log"

	"github.com/ayusman/abhinaya/internal/gesture"
)

// bridgeListener fans detection events out to the event log, plugin
// execution, and any registered listeners. It runs on the pipeline
// goroutine, so plugin actions are dispatched asynchronously.
type bridgeListener struct {
	app *App
}

func (b *bridgeListener) forward(fn func(gesture.Listener)) {
	b.app.mu.RLock()
	listeners := b.app.listeners
	b.app.mu.RUnlock()

	for _, l := range listeners {
		fn(l)
	}
}

func (b *bridgeListener) OnFaceDetected(detected bool) {
	log.Printf("Face detected: %v", detected)
	b.forward(func(l gesture.Listener) { l.OnFaceDetected(detected) })
}

func (b *bridgeListener) OnFaceInPosition(inPosition bool) {
	b.forward(func(l gesture.Listener) { l.OnFaceInPosition(inPosition) })
}

func (b *bridgeListener) OnGestureStateChanged(kind gesture.Kind, active bool) {
	b.forward(func(l gesture.Listener) { l.OnGestureStateChanged(kind, active) })
}

func (b *bridgeListener) OnGestureDetected(kind gesture.Kind) {
	log.Printf("Gesture detected: %s", kind)

	b.app.recordEvent(kind)
	go b.app.executeAction(kind)

	b.forward(func(l gesture.Listener) { l.OnGestureDetected(kind) })
}

func (b *bridgeListener) OnError(message string, code int) {
	log.Printf("Detection error (code %d): %s", code, message)
	b.forward(func(l gesture.Listener) { l.OnError(message, code) })
}
