package app

import (
	"log"
	"time"
)

// runPipeline is the main detection loop that processes frames from the
// camera.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On scene activity or a visible face, switch to active mode (ActiveFPS)
// 3. Run face landmark detection on every frame regardless of mode, so a
//    motionless face still produces gestures
// 4. Feed observations to the detection machine, which emits events
// 5. After IdleTimeout without activity, drop back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastActivity := time.Now()
	wasEnabled := false

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				// Drop detection state once on disable.
				if wasEnabled {
					wasEnabled = false
					a.Machine().Reset()
					a.scene.Reset()
				}
				continue
			}
			wasEnabled = true

			machine := a.Machine()

			frame, err := a.camera.ReadFrame()
			if err != nil {
				machine.ReportError(err.Error(), codeCapture)
				continue
			}

			changed, _ := a.scene.Changed(frame)

			obs, err := a.Detector().Detect(frame)
			frame.Close()
			if err != nil {
				machine.ReportError(err.Error(), codeInference)
				continue
			}

			machine.ProcessFrame(obs, time.Now())

			// A present face counts as activity so the frame rate stays
			// up while the user holds still.
			if changed || (obs != nil && obs.FaceDetected) {
				lastActivity = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastActivity) > IdleTimeout {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}
		}
	}
}
