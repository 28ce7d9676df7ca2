package pdfops

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// OCR renders each page, runs the tesseract binary over the raster in PDF
// output mode, and merges the per-page results into one searchable PDF.
// A missing tesseract binary is a deployment gap, not a caller mistake.
func (o *Ops) OCR(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	bin, err := exec.LookPath("tesseract")
	if err != nil {
		return nil, fmt.Errorf("tesseract binary not found on PATH: %w", engine.ErrMissingDependency)
	}

	lang := req.Opts.Str("language")
	if lang == "" {
		lang = "eng"
	}

	doc, err := fitz.New(req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("ocr: open: %w", err)
	}
	defer doc.Close()

	dir, err := subdir(req, "ocr")
	if err != nil {
		return nil, err
	}

	var pagePDFs []string
	for p := 0; p < doc.NumPage(); p++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(p, 300)
		if err != nil {
			return nil, fmt.Errorf("ocr: render page %d: %w", p+1, err)
		}
		pagePath := filepath.Join(dir, fmt.Sprintf("page_%03d.jpg", p+1))
		if err := writeJPEG(pagePath, img, 95); err != nil {
			return nil, fmt.Errorf("ocr: encode page %d: %w", p+1, err)
		}

		// tesseract appends .pdf to the output base itself.
		outBase := filepath.Join(dir, fmt.Sprintf("ocr_%03d", p+1))
		cmd := exec.CommandContext(ctx, bin, pagePath, outBase, "-l", lang, "pdf")
		if raw, err := cmd.CombinedOutput(); err != nil {
			o.logger.Error().Err(err).Str("output", strings.TrimSpace(string(raw))).Int("page", p+1).Msg("tesseract failed")
			return nil, fmt.Errorf("ocr: tesseract page %d: %w", p+1, err)
		}
		pagePDFs = append(pagePDFs, outBase+".pdf")
	}

	out := scratch(req, "ocr", ".pdf")
	if len(pagePDFs) == 1 {
		if err := copyFile(pagePDFs[0], out); err != nil {
			return nil, fmt.Errorf("ocr: %w", err)
		}
	} else if err := api.MergeCreateFile(pagePDFs, out, false, conf()); err != nil {
		return nil, fmt.Errorf("ocr: merge pages: %w", err)
	}
	return fileResult(out, "ocr-blinkpdf.pdf", MimePDF), nil
}
