package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/abhinaya/internal/app"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/store"
)

// detectedRecorder captures debounced detections from the machine.
type detectedRecorder struct {
	mu    sync.Mutex
	kinds []gesture.Kind
}

func (r *detectedRecorder) OnFaceDetected(bool)                      {}
func (r *detectedRecorder) OnFaceInPosition(bool)                    {}
func (r *detectedRecorder) OnGestureStateChanged(gesture.Kind, bool) {}
func (r *detectedRecorder) OnError(string, int)                      {}

func (r *detectedRecorder) OnGestureDetected(kind gesture.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *detectedRecorder) detections() []gesture.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gesture.Kind(nil), r.kinds...)
}

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("BindAction", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/actions",
			"application/json",
			strings.NewReader(`{"gesture": "blink", "plugin_name": "system-control", "action_name": "volume-mute"}`),
		)
		if err != nil {
			t.Fatalf("create action error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("TuneSettings", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings",
			strings.NewReader(`{"blink_threshold": 0.6, "cooldown_ms": 200}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update settings error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	application := app.New(app.Config{
		Store:     s,
		PluginDir: filepath.Join(tmpDir, "plugins"),
		Detection: gesture.Config{
			BlinkThreshold:   0.6,
			JawOpenThreshold: 0.4,
			SmileThreshold:   0.6,
			Cooldown:         200 * time.Millisecond,
		},
	})

	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	rec := &detectedRecorder{}
	application.AddListener(rec)

	t.Run("DetectGesture", func(t *testing.T) {
		machine := application.Machine()
		now := time.Now()

		// Neutral face first, then a blink edge.
		machine.ProcessFrame(detector.NeutralObservation(), now)
		events := machine.ProcessFrame(detector.BlinkObservation(), now.Add(100*time.Millisecond))

		var sawDetected bool
		for _, ev := range events {
			if ev.Type == gesture.EventGestureDetected && ev.Kind == gesture.Blink {
				sawDetected = true
			}
		}
		if !sawDetected {
			t.Fatal("expected a blink detection event")
		}

		detections := rec.detections()
		if len(detections) != 1 || detections[0] != gesture.Blink {
			t.Errorf("listener detections = %v, want [blink]", detections)
		}
	})

	t.Run("DetectionLogged", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/events")
		if err != nil {
			t.Fatalf("list events error = %v", err)
		}
		defer resp.Body.Close()

		var listResp struct {
			Events []struct {
				Gesture string `json:"gesture"`
			} `json:"events"`
		}
		json.NewDecoder(resp.Body).Decode(&listResp)

		if len(listResp.Events) != 1 {
			t.Fatalf("expected 1 logged event, got %d", len(listResp.Events))
		}
		if listResp.Events[0].Gesture != "blink" {
			t.Errorf("logged gesture = %s, want blink", listResp.Events[0].Gesture)
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_CooldownAcrossFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:     s,
		PluginDir: filepath.Join(tmpDir, "plugins"),
		Detection: gesture.Config{
			BlinkThreshold:   0.5,
			JawOpenThreshold: 0.4,
			SmileThreshold:   0.6,
			Cooldown:         500 * time.Millisecond,
		},
	})

	rec := &detectedRecorder{}
	application.AddListener(rec)

	machine := application.Machine()
	t0 := time.Now()

	// Two quick blinks within the cooldown, a third after it.
	machine.ProcessFrame(detector.BlinkObservation(), t0)
	machine.ProcessFrame(detector.NeutralObservation(), t0.Add(100*time.Millisecond))
	machine.ProcessFrame(detector.BlinkObservation(), t0.Add(200*time.Millisecond))
	machine.ProcessFrame(detector.NeutralObservation(), t0.Add(300*time.Millisecond))
	machine.ProcessFrame(detector.BlinkObservation(), t0.Add(600*time.Millisecond))

	detections := rec.detections()
	if len(detections) != 2 {
		t.Fatalf("detections = %v, want exactly 2 blinks", detections)
	}

	// Only the fired detections reach the event log.
	events, err := s.Events().Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 2 {
		t.Errorf("logged events = %d, want 2", len(events))
	}
}

func TestE2E_ActionBinding(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	actionReq := map[string]interface{}{
		"gesture":     "jaw_open",
		"plugin_name": "system-control",
		"action_name": "media-play-pause",
	}
	actionBody, _ := json.Marshal(actionReq)

	resp, err := client.Post(
		ts.URL+"/api/actions",
		"application/json",
		strings.NewReader(string(actionBody)),
	)
	if err != nil {
		t.Fatalf("create action error = %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("create action status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/actions")
	if err != nil {
		t.Fatalf("list actions error = %v", err)
	}

	var listResp struct {
		Actions []struct {
			ID         string `json:"id"`
			Gesture    string `json:"gesture"`
			PluginName string `json:"plugin_name"`
			ActionName string `json:"action_name"`
			Enabled    bool   `json:"enabled"`
		} `json:"actions"`
	}
	json.NewDecoder(resp.Body).Decode(&listResp)
	resp.Body.Close()

	if len(listResp.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(listResp.Actions))
	}

	if listResp.Actions[0].Gesture != "jaw_open" {
		t.Errorf("action gesture = %s, want jaw_open", listResp.Actions[0].Gesture)
	}

	// The binding is what the pipeline resolves when the gesture fires.
	bound, err := s.Actions().GetByGesture("jaw_open")
	if err != nil {
		t.Fatalf("GetByGesture() error = %v", err)
	}
	if bound == nil || bound.ActionName != "media-play-pause" {
		t.Errorf("bound action = %+v, want media-play-pause", bound)
	}
}
