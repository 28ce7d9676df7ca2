// Package handlers implements the HTTP handlers over the conversion
// pipeline: one processing endpoint plus the registry listing endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/blinkpdf/blinkpdf/internal/engine"
	"github.com/blinkpdf/blinkpdf/internal/workspace"
)

// ProcessHandler runs every conversion request through the
// normalize → dispatch → envelope pipeline.
type ProcessHandler struct {
	logger     zerolog.Logger
	normalizer *engine.Normalizer
	dispatcher *engine.Dispatcher
	workspaces *workspace.Manager
	maxBytes   int64
	maxFiles   int
}

// NewProcessHandler wires the pipeline stages together.
func NewProcessHandler(
	logger zerolog.Logger,
	normalizer *engine.Normalizer,
	dispatcher *engine.Dispatcher,
	workspaces *workspace.Manager,
	maxBytes int64,
	maxFiles int,
) *ProcessHandler {
	return &ProcessHandler{
		logger:     logger,
		normalizer: normalizer,
		dispatcher: dispatcher,
		workspaces: workspaces,
		maxBytes:   maxBytes,
		maxFiles:   maxFiles,
	}
}

// ProcessTool handles POST /process/{tool}.
func (h *ProcessHandler) ProcessTool(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, chi.URLParam(r, "tool"))
}

// Process handles POST /process with the tool id as a form field.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, "")
}

func (h *ProcessHandler) process(w http.ResponseWriter, r *http.Request, toolID string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, engine.BadInput(fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit)))
			return
		}
		writeError(w, engine.BadInput("request body is not valid multipart form data"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	if toolID == "" {
		toolID = r.FormValue("tool")
	}
	if toolID == "" {
		writeError(w, engine.BadInput("no tool specified"))
		return
	}

	workDir, err := h.workspaces.NewDir()
	if err != nil {
		h.logger.Error().Err(err).Msg("workspace allocation failed")
		writeError(w, &engine.OperationError{
			Kind:    engine.KindProcessingFailure,
			Message: "processing failed for this tool",
		})
		return
	}
	defer h.workspaces.Release(workDir)

	files, opErr := h.saveUploads(r.MultipartForm, workDir)
	if opErr != nil {
		writeError(w, opErr)
		return
	}

	req, opErr := h.normalizer.Normalize(toolID, files, r.MultipartForm.Value)
	if opErr != nil {
		writeError(w, opErr)
		return
	}
	req.WorkDir = workDir

	result, opErr := h.dispatcher.Dispatch(r.Context(), req)
	env := engine.Build(result, opErr)
	if env.Outcome == engine.OutcomeError {
		writeError(w, opErr)
		return
	}

	h.serveFile(w, env)
}

// saveUploads copies every uploaded part under "file"/"files" into the
// request workspace, preserving upload order.
func (h *ProcessHandler) saveUploads(form *multipart.Form, workDir string) ([]engine.Upload, *engine.OperationError) {
	var parts []*multipart.FileHeader
	for _, field := range []string{"file", "files"} {
		parts = append(parts, form.File[field]...)
	}
	if len(parts) > h.maxFiles {
		return nil, engine.BadInput(fmt.Sprintf("too many files: %d exceeds the limit of %d", len(parts), h.maxFiles))
	}

	uploads := make([]engine.Upload, 0, len(parts))
	for _, part := range parts {
		src, err := part.Open()
		if err != nil {
			return nil, engine.BadInput(fmt.Sprintf("unreadable upload %q", part.Filename))
		}

		path := filepath.Join(workDir, "in-"+uuid.NewString())
		dst, err := os.Create(path)
		if err != nil {
			src.Close()
			h.logger.Error().Err(err).Msg("upload spool failed")
			return nil, &engine.OperationError{
				Kind:    engine.KindProcessingFailure,
				Message: "processing failed for this tool",
			}
		}
		size, err := io.Copy(dst, src)
		src.Close()
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			h.logger.Error().Err(err).Msg("upload spool failed")
			return nil, &engine.OperationError{
				Kind:    engine.KindProcessingFailure,
				Message: "processing failed for this tool",
			}
		}

		uploads = append(uploads, engine.Upload{Name: part.Filename, Path: path, Size: size})
	}
	return uploads, nil
}

// serveFile streams the result artifact as an attachment. The artifact
// lives in the request workspace, which the deferred Release removes.
func (h *ProcessHandler) serveFile(w http.ResponseWriter, env engine.Envelope) {
	f, err := os.Open(env.Path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", env.Path).Msg("result artifact missing")
		writeError(w, &engine.OperationError{
			Kind:    engine.KindProcessingFailure,
			Message: "processing failed for this tool",
		})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", env.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", env.Filename))
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn().Err(err).Msg("response write interrupted")
	}
}

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error   bool   `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, opErr *engine.OperationError) {
	env := engine.Build(nil, opErr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	json.NewEncoder(w).Encode(errorBody{
		Error:   true,
		Kind:    string(env.Kind),
		Message: env.Message,
	})
}
