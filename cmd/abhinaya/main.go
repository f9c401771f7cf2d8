package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ayusman/abhinaya/internal/app"
	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/server/api"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tray"
)

func main() {
	fmt.Println("Abhinaya - Face Gesture Control")

	cfg, err := config.LoadOrDefault(config.DefaultPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".abhinaya")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "abhinaya.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	pluginDir := cfg.PluginDir
	if pluginDir == "" {
		pluginDir = filepath.Join(dataDir, "plugins")
	}

	// Settings saved through the API take precedence over the config file.
	baseDetection := gesture.Config{
		BlinkThreshold:   cfg.Detection.BlinkThreshold,
		JawOpenThreshold: cfg.Detection.JawOpenThreshold,
		SmileThreshold:   cfg.Detection.SmileThreshold,
		Cooldown:         cfg.Detection.Cooldown,
	}

	application := app.New(app.Config{
		Store:          st,
		PluginDir:      pluginDir,
		CameraID:       cfg.Camera.DeviceID,
		SceneThreshold: cfg.Camera.SceneThreshold,
		Detection:      api.DetectionConfig(st, baseDetection),
	})

	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Plugins:   application.PluginManager(),
		OnSettingsChange: func() {
			application.SetDetectionConfig(api.DetectionConfig(st, baseDetection))
		},
	})
	application.AddListener(srv.Live())

	tr := tray.New()
	application.AddListener(&trayListener{tray: tr})
	tr.OnToggle(application.SetEnabled)
	tr.OnSettings(func() { openBrowser(settingsURL(cfg.Server.Addr)) })
	tr.OnQuit(application.Stop)

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	application.SetEnabled(true)
	if err := application.Start(); err != nil {
		log.Printf("Detection pipeline failed to start: %v", err)
	}

	// Blocks until quit is selected from the tray menu.
	tr.Run()
}

// trayListener mirrors detection state into the tray menu.
type trayListener struct {
	tray *tray.Tray
}

func (t *trayListener) OnFaceDetected(detected bool) { t.tray.SetFaceVisible(detected) }

func (t *trayListener) OnFaceInPosition(inPosition bool) {}

func (t *trayListener) OnGestureStateChanged(kind gesture.Kind, active bool) {}

func (t *trayListener) OnGestureDetected(kind gesture.Kind) {
	t.tray.SetLastGesture(kind.String())
}

func (t *trayListener) OnError(message string, code int) {}

// settingsURL turns a listen address into a browsable URL.
func settingsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.abhinaya/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".abhinaya", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
