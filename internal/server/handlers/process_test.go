package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkpdf/blinkpdf/internal/engine"
	"github.com/blinkpdf/blinkpdf/internal/tool"
	"github.com/blinkpdf/blinkpdf/internal/workspace"
)

func testRouter(t *testing.T, handlers map[string]engine.Handler) http.Handler {
	t.Helper()

	registry := tool.NewRegistry([]tool.Descriptor{
		{
			ID: "uppercase", Title: "Uppercase", Category: "Test",
			Arity: tool.SingleFile,
			Options: []tool.OptionSpec{
				{Name: "suffix", Type: tool.String, Default: ""},
			},
		},
		{
			ID: "needs-engine", Title: "Needs Engine", Category: "Test",
			Arity: tool.SingleFile,
		},
	}, nil)

	workspaces, err := workspace.NewManager(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	process := NewProcessHandler(
		zerolog.Nop(),
		engine.NewNormalizer(registry),
		engine.NewDispatcher(handlers, zerolog.Nop()),
		workspaces,
		1<<20,
		5,
	)
	tools := NewToolsHandler(zerolog.Nop(), registry)

	r := chi.NewRouter()
	r.Post("/process", process.Process)
	r.Post("/process/{tool}", process.ProcessTool)
	r.Get("/tool/{tool}", tools.Get)
	r.Get("/api/v1/tools", tools.List)
	return r
}

// uppercaseHandler writes the upper-cased input back as a text artifact.
func uppercaseHandler(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	raw, err := os.ReadFile(req.Primary().Path)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(req.WorkDir, "out.txt")
	content := bytes.ToUpper(raw)
	if suffix := req.Opts.Str("suffix"); suffix != "" {
		content = append(content, []byte(suffix)...)
	}
	if err := os.WriteFile(out, content, 0o600); err != nil {
		return nil, err
	}
	return &engine.ConversionResult{Path: out, Filename: "out.txt", ContentType: "text/plain; charset=utf-8"}, nil
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (kind, message string) {
	t.Helper()
	var body struct {
		Error   bool   `json:"error"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	return body.Kind, body.Message
}

func TestProcess_Success(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{"uppercase": uppercaseHandler})

	body, contentType := multipartBody(t, map[string]string{"suffix": "!"}, map[string]string{"doc.txt": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/process/uppercase", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "HELLO!", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="out.txt"`)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestProcess_ToolAsFormField(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{"uppercase": uppercaseHandler})

	body, contentType := multipartBody(t, map[string]string{"tool": "uppercase"}, map[string]string{"doc.txt": "abc"})
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ABC", rec.Body.String())
}

func TestProcess_UnknownTool(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{})

	body, contentType := multipartBody(t, nil, map[string]string{"doc.txt": "x"})
	req := httptest.NewRequest(http.MethodPost, "/process/no-such-tool", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	kind, _ := decodeError(t, rec)
	assert.Equal(t, "bad-input", kind)
}

func TestProcess_NoFiles(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{"uppercase": uppercaseHandler})

	body, contentType := multipartBody(t, map[string]string{"suffix": "!"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/process/uppercase", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	kind, _ := decodeError(t, rec)
	assert.Equal(t, "bad-input", kind)
}

func TestProcess_MissingDependency(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{
		"needs-engine": func(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
			return nil, fmt.Errorf("conversion engine unavailable: %w", engine.ErrMissingDependency)
		},
	})

	body, contentType := multipartBody(t, nil, map[string]string{"doc.txt": "x"})
	req := httptest.NewRequest(http.MethodPost, "/process/needs-engine", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	kind, message := decodeError(t, rec)
	assert.Equal(t, "missing-dependency", kind)
	assert.Contains(t, message, "unavailable")
}

func TestProcess_HandlerFailureIsOpaque(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{
		"uppercase": func(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
			return nil, fmt.Errorf("pdfcpu: damaged stream at object 12")
		},
	})

	body, contentType := multipartBody(t, nil, map[string]string{"doc.txt": "x"})
	req := httptest.NewRequest(http.MethodPost, "/process/uppercase", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	kind, message := decodeError(t, rec)
	assert.Equal(t, "processing-failure", kind)
	assert.NotContains(t, message, "pdfcpu", "internal detail must not leak")
}

func TestProcess_NotMultipart(t *testing.T) {
	router := testRouter(t, map[string]engine.Handler{"uppercase": uppercaseHandler})

	req := httptest.NewRequest(http.MethodPost, "/process/uppercase", bytes.NewBufferString(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	kind, _ := decodeError(t, rec)
	assert.Equal(t, "bad-input", kind)
}

func TestTools_List(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count int `json:"count"`
		Tools []struct {
			ID string `json:"id"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "uppercase", body.Tools[0].ID, "catalog order must be preserved")
}

func TestTools_Get(t *testing.T) {
	router := testRouter(t, nil)

	t.Run("known tool", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tool/uppercase", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var info struct {
			ID       string `json:"id"`
			MinFiles int    `json:"min_files"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
		assert.Equal(t, "uppercase", info.ID)
		assert.Equal(t, 1, info.MinFiles)
	})

	t.Run("unknown tool", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tool/ghost", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
