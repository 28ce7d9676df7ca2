// Package pdfops implements the conversion routines behind the tool
// catalog. Every routine is a stateless function over a validated
// OperationRequest; all intermediate artifacts live in the request's
// private workspace directory and every generated name embeds a fresh uuid.
package pdfops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// MIME types for the artifacts the routines produce.
const (
	MimePDF  = "application/pdf"
	MimeZip  = "application/zip"
	MimeText = "text/plain; charset=utf-8"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Ops bundles the conversion routines with their shared logger.
type Ops struct {
	logger zerolog.Logger
}

// New creates the conversion routine set.
func New(logger zerolog.Logger) *Ops {
	return &Ops{logger: logger}
}

// conf returns a fresh pdfcpu configuration. Configurations carry per-call
// state (passwords, validation mode), so they are never shared.
func conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// scratch returns a unique artifact path inside the request workspace.
func scratch(req *engine.OperationRequest, prefix, ext string) string {
	return filepath.Join(req.WorkDir, fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext))
}

// zipDir packs every regular file in dir (alphabetical) into a fresh zip
// archive inside the workspace.
func zipDir(req *engine.OperationRequest, dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list artifacts: %w", err)
	}

	zipPath := scratch(req, prefix, ".zip")
	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("open artifact %s: %w", e.Name(), err)
		}
		w, err := zw.Create(e.Name())
		if err == nil {
			_, err = io.Copy(w, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("archive artifact %s: %w", e.Name(), err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	return zipPath, nil
}

// subdir creates a unique scratch directory inside the request workspace.
func subdir(req *engine.OperationRequest, prefix string) (string, error) {
	dir := filepath.Join(req.WorkDir, prefix+"-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	return dir, nil
}

func fileResult(path, filename, mime string) *engine.ConversionResult {
	return &engine.ConversionResult{Path: path, Filename: filename, ContentType: mime}
}
