package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/blinkpdf/blinkpdf/internal/tool"
)

// ToolsHandler serves the registry listing endpoints.
type ToolsHandler struct {
	logger   zerolog.Logger
	registry *tool.Registry
}

// NewToolsHandler creates the registry listing handler.
func NewToolsHandler(logger zerolog.Logger, registry *tool.Registry) *ToolsHandler {
	return &ToolsHandler{logger: logger, registry: registry}
}

type optionInfo struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Default any      `json:"default,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Allowed []int64  `json:"allowed,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

type toolInfo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	MultiFile   bool         `json:"multi_file"`
	MinFiles    int          `json:"min_files"`
	Options     []optionInfo `json:"options"`
}

func describe(desc tool.Descriptor) toolInfo {
	info := toolInfo{
		ID:          desc.ID,
		Title:       desc.Title,
		Category:    desc.Category,
		Description: desc.Description,
		MultiFile:   desc.Arity == tool.MultiFile,
		MinFiles:    desc.MinFiles(),
		Options:     make([]optionInfo, 0, len(desc.Options)),
	}
	for _, opt := range desc.Options {
		info.Options = append(info.Options, optionInfo{
			Name:    opt.Name,
			Type:    opt.Type.String(),
			Default: opt.Default,
			Enum:    opt.Enum,
			Allowed: opt.Allowed,
			Min:     opt.Min,
			Max:     opt.Max,
		})
	}
	return info
}

// List handles GET /api/v1/tools, in catalog order.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()
	infos := make([]toolInfo, 0, len(all))
	for _, desc := range all {
		infos = append(infos, describe(desc))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(infos),
		"tools": infos,
	})
}

// Get handles GET /tool/{tool}.
func (h *ToolsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tool")
	desc, ok := h.registry.Lookup(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   true,
			"message": "unknown tool " + id,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(describe(desc))
}
