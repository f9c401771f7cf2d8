// Package app provides the main application logic for the Abhinaya face gesture system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/plugin"
	"github.com/ayusman/abhinaya/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no face or scene activity is seen.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a face is present or the scene
	// recently changed.
	ActiveFPS = 15
	// IdleTimeout is how long activity must be absent before dropping back
	// to the idle frame rate.
	IdleTimeout = 2 * time.Second
	// PluginTimeout bounds a single plugin action execution.
	PluginTimeout = 5 * time.Second
)

// Error codes reported through the detection machine.
const (
	codeCapture   = 1
	codeInference = 2
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	PluginDir      string
	CameraID       int
	SceneThreshold float64
	Detection      gesture.Config
}

// App orchestrates the capture-detect-gesture pipeline and executes plugin
// actions bound to detected gestures.
type App struct {
	config     Config
	camera     capture.Camera
	scene      *capture.SceneGate
	detector   detector.Detector
	machine    *gesture.Machine
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	listeners  []gesture.Listener
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	sceneThreshold := config.SceneThreshold
	if sceneThreshold <= 0 {
		sceneThreshold = 1.0 // Default threshold: 1% pixel change
	}
	if config.Detection == (gesture.Config{}) {
		config.Detection = gesture.DefaultConfig()
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		scene:      capture.NewSceneGate(sceneThreshold),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeout),
		enabled:    false,
		stopCh:     nil,
	}

	// Build is infallible here: the bridge listener is always set.
	machine, err := gesture.NewBuilder().
		BlinkThreshold(config.Detection.BlinkThreshold).
		JawOpenThreshold(config.Detection.JawOpenThreshold).
		SmileThreshold(config.Detection.SmileThreshold).
		Cooldown(config.Detection.Cooldown).
		Listener(&bridgeListener{app: a}).
		Build()
	if err != nil {
		panic(err)
	}
	a.machine = machine

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe face landmarker")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection. The pipeline resets the
// detection state when it observes the disable, so stale edges are not
// carried into the next session.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the face detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetDetectionConfig rebuilds the detection machine with new settings.
// Presence and gesture state start fresh.
func (a *App) SetDetectionConfig(cfg gesture.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	machine, err := gesture.NewBuilder().
		BlinkThreshold(cfg.BlinkThreshold).
		JawOpenThreshold(cfg.JawOpenThreshold).
		SmileThreshold(cfg.SmileThreshold).
		Cooldown(cfg.Cooldown).
		Listener(&bridgeListener{app: a}).
		Build()
	if err != nil {
		panic(err)
	}

	a.config.Detection = cfg
	a.machine = machine
	log.Printf("Detection settings updated: blink=%.2f jaw=%.2f smile=%.2f cooldown=%s",
		cfg.BlinkThreshold, cfg.JawOpenThreshold, cfg.SmileThreshold, cfg.Cooldown)
}

// AddListener registers an additional event listener. Must be called before
// Start.
func (a *App) AddListener(l gesture.Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.scene.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// executeAction runs the plugin action bound to the detected gesture, if one
// exists and is enabled.
func (a *App) executeAction(kind gesture.Kind) {
	if a.config.Store == nil {
		return
	}

	action, err := a.config.Store.Actions().GetByGesture(kind.String())
	if err != nil {
		log.Printf("Failed to look up action for %s: %v", kind, err)
		return
	}
	if action == nil {
		return
	}

	p, err := a.pluginMgr.Get(action.PluginName)
	if err != nil {
		log.Printf("Plugin %q bound to %s not found", action.PluginName, kind)
		return
	}

	resp, err := a.pluginExec.Execute(p, &plugin.Request{
		Action:  action.ActionName,
		Gesture: kind.String(),
		Config:  action.Config,
	})
	if err != nil {
		log.Printf("Plugin %q action %q failed: %v", action.PluginName, action.ActionName, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %q action %q returned error: %s", action.PluginName, action.ActionName, resp.Error)
		return
	}

	log.Printf("Executed %s/%s for gesture %s", action.PluginName, action.ActionName, kind)
}

// recordEvent logs a detection to the event log.
func (a *App) recordEvent(kind gesture.Kind) {
	if a.config.Store == nil {
		return
	}

	err := a.config.Store.Events().Insert(&store.Event{
		ID:      uuid.New().String(),
		Gesture: kind.String(),
	})
	if err != nil {
		log.Printf("Failed to record %s event: %v", kind, err)
	}
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// SceneGate returns the scene activity gate.
func (a *App) SceneGate() *capture.SceneGate {
	return a.scene
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the face detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Machine returns the current detection machine.
func (a *App) Machine() *gesture.Machine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.machine
}
