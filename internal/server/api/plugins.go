package api

import (
	"net/http"
	"sort"

	"github.com/ayusman/abhinaya/internal/plugin"
)

// PluginsHandler exposes discovered plugins read-only.
type PluginsHandler struct {
	plugins *plugin.Manager
}

// NewPluginsHandler creates a new PluginsHandler with the given manager.
func NewPluginsHandler(m *plugin.Manager) *PluginsHandler {
	return &PluginsHandler{plugins: m}
}

type pluginResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

type listPluginsResponse struct {
	Plugins []pluginResponse `json:"plugins"`
}

// ServeHTTP handles GET /api/plugins.
func (h *PluginsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := listPluginsResponse{
		Plugins: make([]pluginResponse, 0),
	}
	for _, p := range h.plugins.List() {
		response.Plugins = append(response.Plugins, pluginResponse{
			Name:        p.Manifest.Name,
			Version:     p.Manifest.Version,
			Description: p.Manifest.Description,
			Actions:     p.Manifest.Actions,
		})
	}

	sort.Slice(response.Plugins, func(i, j int) bool {
		return response.Plugins[i].Name < response.Plugins[j].Name
	})

	writeJSON(w, http.StatusOK, response)
}
