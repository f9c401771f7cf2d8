package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/abhinaya/internal/store"
)

func TestAPI_ActionWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New error = %v", err)
	}
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Bind a plugin action to the blink gesture
	createBody := `{"gesture": "blink", "plugin_name": "system-control", "action_name": "media-play-pause"}`
	resp, err := client.Post(ts.URL+"/api/actions", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/actions error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID      string `json:"id"`
		Gesture string `json:"gesture"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Gesture != "blink" {
		t.Errorf("created gesture = %s, want blink", created.Gesture)
	}

	// 2. List actions
	resp, _ = client.Get(ts.URL + "/api/actions")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/actions status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Actions []struct {
			ID      string `json:"id"`
			Gesture string `json:"gesture"`
		} `json:"actions"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(listed.Actions))
	}

	// 3. Get single action
	resp, _ = client.Get(ts.URL + "/api/actions/" + created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/actions/%s status = %d, want %d", created.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete action
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/actions/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/actions/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_SettingsWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New error = %v", err)
	}
	defer s.Close()

	notified := 0
	srv := New(Config{Store: s, OnSettingsChange: func() { notified++ }})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// Update a threshold
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings", bytes.NewBufferString(`{"smile_threshold": 0.8}`))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/settings error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	if notified != 1 {
		t.Errorf("OnSettingsChange calls = %d, want 1", notified)
	}

	// Read it back
	resp, _ = client.Get(ts.URL + "/api/settings")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/settings status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var settings struct {
		SmileThreshold float64 `json:"smile_threshold"`
	}
	json.NewDecoder(resp.Body).Decode(&settings)
	resp.Body.Close()

	if settings.SmileThreshold != 0.8 {
		t.Errorf("smile_threshold = %v, want 0.8", settings.SmileThreshold)
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
