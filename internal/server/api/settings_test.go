package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestSettingsHandler_Get_Defaults(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.BlinkThreshold != gesture.DefaultBlinkThreshold {
		t.Errorf("expected blink_threshold %v, got %v", gesture.DefaultBlinkThreshold, response.BlinkThreshold)
	}
	if response.JawOpenThreshold != gesture.DefaultJawOpenThreshold {
		t.Errorf("expected jaw_open_threshold %v, got %v", gesture.DefaultJawOpenThreshold, response.JawOpenThreshold)
	}
	if response.SmileThreshold != gesture.DefaultSmileThreshold {
		t.Errorf("expected smile_threshold %v, got %v", gesture.DefaultSmileThreshold, response.SmileThreshold)
	}
	if response.CooldownMs != gesture.DefaultCooldown.Milliseconds() {
		t.Errorf("expected cooldown_ms %d, got %d", gesture.DefaultCooldown.Milliseconds(), response.CooldownMs)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)

	changed := false
	handler := NewSettingsHandler(s, func() { changed = true })

	body, _ := json.Marshal(map[string]interface{}{
		"blink_threshold": 0.7,
		"cooldown_ms":     250,
	})

	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var response settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.BlinkThreshold != 0.7 {
		t.Errorf("expected blink_threshold 0.7, got %v", response.BlinkThreshold)
	}
	if response.CooldownMs != 250 {
		t.Errorf("expected cooldown_ms 250, got %d", response.CooldownMs)
	}

	// Omitted fields keep defaults.
	if response.SmileThreshold != gesture.DefaultSmileThreshold {
		t.Errorf("expected smile_threshold %v, got %v", gesture.DefaultSmileThreshold, response.SmileThreshold)
	}

	if !changed {
		t.Error("expected onChange to be called")
	}
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil)

	cases := []struct {
		name string
		body string
	}{
		{"threshold above one", `{"blink_threshold": 1.5}`},
		{"threshold below zero", `{"smile_threshold": -0.1}`},
		{"negative cooldown", `{"cooldown_ms": -5}`},
		{"invalid json", `not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestDetectionConfig_FromStore(t *testing.T) {
	s := newTestStore(t)

	if err := s.Settings().Set(store.SettingJawOpenThreshold, "0.55"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Settings().Set(store.SettingCooldownMs, "750"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	cfg := DetectionConfig(s, gesture.DefaultConfig())

	if cfg.JawOpenThreshold != 0.55 {
		t.Errorf("expected JawOpenThreshold 0.55, got %v", cfg.JawOpenThreshold)
	}
	if cfg.Cooldown != 750*time.Millisecond {
		t.Errorf("expected cooldown 750ms, got %s", cfg.Cooldown)
	}
	if cfg.BlinkThreshold != gesture.DefaultBlinkThreshold {
		t.Errorf("expected default BlinkThreshold, got %v", cfg.BlinkThreshold)
	}
}
