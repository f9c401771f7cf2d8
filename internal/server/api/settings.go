// Package api provides HTTP API handlers for the Abhinaya face gesture system.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// SettingsHandler handles HTTP requests for detection settings.
type SettingsHandler struct {
	store    *store.Store
	onChange func()
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
// onChange, if non-nil, is invoked after settings were persisted.
func NewSettingsHandler(s *store.Store, onChange func()) *SettingsHandler {
	return &SettingsHandler{store: s, onChange: onChange}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type settingsResponse struct {
	BlinkThreshold   float64 `json:"blink_threshold"`
	JawOpenThreshold float64 `json:"jaw_open_threshold"`
	SmileThreshold   float64 `json:"smile_threshold"`
	CooldownMs       int64   `json:"cooldown_ms"`
}

type updateSettingsRequest struct {
	BlinkThreshold   *float64 `json:"blink_threshold"`
	JawOpenThreshold *float64 `json:"jaw_open_threshold"`
	SmileThreshold   *float64 `json:"smile_threshold"`
	CooldownMs       *int64   `json:"cooldown_ms"`
}

// DetectionConfig overlays stored settings onto the base config. Keys that
// were never set or fail to parse keep the base values.
func DetectionConfig(s *store.Store, base gesture.Config) gesture.Config {
	cfg := base

	values, err := s.Settings().All()
	if err != nil {
		return cfg
	}

	if v, ok := values[store.SettingBlinkThreshold]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.BlinkThreshold = f
		}
	}
	if v, ok := values[store.SettingJawOpenThreshold]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.JawOpenThreshold = f
		}
	}
	if v, ok := values[store.SettingSmileThreshold]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SmileThreshold = f
		}
	}
	if v, ok := values[store.SettingCooldownMs]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Cooldown = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// get handles GET /api/settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	cfg := DetectionConfig(h.store, gesture.DefaultConfig())

	writeJSON(w, http.StatusOK, settingsResponse{
		BlinkThreshold:   cfg.BlinkThreshold,
		JawOpenThreshold: cfg.JawOpenThreshold,
		SmileThreshold:   cfg.SmileThreshold,
		CooldownMs:       cfg.Cooldown.Milliseconds(),
	})
}

// update handles PUT /api/settings. Omitted fields keep their stored values.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for _, v := range []*float64{req.BlinkThreshold, req.JawOpenThreshold, req.SmileThreshold} {
		if v != nil && (*v < 0 || *v > 1) {
			writeError(w, http.StatusBadRequest, "Thresholds must be between 0 and 1")
			return
		}
	}
	if req.CooldownMs != nil && *req.CooldownMs < 0 {
		writeError(w, http.StatusBadRequest, "cooldown_ms must not be negative")
		return
	}

	settings := h.store.Settings()
	if req.BlinkThreshold != nil {
		if err := settings.Set(store.SettingBlinkThreshold, formatFloat(*req.BlinkThreshold)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}
	if req.JawOpenThreshold != nil {
		if err := settings.Set(store.SettingJawOpenThreshold, formatFloat(*req.JawOpenThreshold)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}
	if req.SmileThreshold != nil {
		if err := settings.Set(store.SettingSmileThreshold, formatFloat(*req.SmileThreshold)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}
	if req.CooldownMs != nil {
		if err := settings.Set(store.SettingCooldownMs, strconv.FormatInt(*req.CooldownMs, 10)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	if h.onChange != nil {
		h.onChange()
	}

	h.get(w, r)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
