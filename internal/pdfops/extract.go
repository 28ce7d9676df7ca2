package pdfops

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// DocumentText returns the concatenated text of every page, separated by
// form feeds. Shared by the text exports and the AI handlers.
func DocumentText(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for p := 0; p < doc.NumPage(); p++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		text, err := doc.Text(p)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", p+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\f")
	}
	return sb.String(), nil
}

// ExtractText writes the document's text layer to a plain-text artifact.
func (o *Ops) ExtractText(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text, err := DocumentText(ctx, req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	out := scratch(req, "text", ".txt")
	if err := os.WriteFile(out, []byte(text), 0o600); err != nil {
		return nil, fmt.Errorf("extract text: write: %w", err)
	}
	return fileResult(out, "extracted-text-blinkpdf.txt", MimeText), nil
}

// ExtractImages pulls embedded images out of the document and zips them.
func (o *Ops) ExtractImages(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	dir, err := subdir(req, "embedded")
	if err != nil {
		return nil, err
	}
	if err := api.ExtractImagesFile(req.Primary().Path, dir, nil, conf()); err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("extract images: list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("extract images: document has no embedded images")
	}

	zipPath, err := zipDir(req, dir, "images")
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}
	return fileResult(zipPath, "extracted-images-blinkpdf.zip", MimeZip), nil
}
