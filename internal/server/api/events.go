package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/abhinaya/internal/store"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventsHandler handles HTTP requests for the detection event log.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodDelete:
		h.prune(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type eventResponse struct {
	ID         string `json:"id"`
	Gesture    string `json:"gesture"`
	DetectedAt string `json:"detected_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type pruneEventsResponse struct {
	Deleted int64 `json:"deleted"`
}

// list handles GET /api/events?limit=N, newest first.
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if n > maxEventLimit {
			n = maxEventLimit
		}
		limit = n
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:         e.ID,
			Gesture:    e.Gesture,
			DetectedAt: e.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// prune handles DELETE /api/events?before=RFC3339. With no cutoff the whole
// log is cleared.
func (h *EventsHandler) prune(w http.ResponseWriter, r *http.Request) {
	before := time.Now()
	if v := r.URL.Query().Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid before timestamp")
			return
		}
		before = t
	}

	deleted, err := h.store.Events().Prune(before)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to prune events")
		return
	}

	writeJSON(w, http.StatusOK, pruneEventsResponse{Deleted: deleted})
}
