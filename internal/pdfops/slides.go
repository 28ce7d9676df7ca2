package pdfops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// ToPowerpoint renders each page and builds a deck with one full-bleed
// picture slide per page.
func (o *Ops) ToPowerpoint(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	doc, err := fitz.New(req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("pdf to powerpoint: open: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return nil, fmt.Errorf("pdf to powerpoint: document has no pages")
	}

	dir, err := subdir(req, "slides")
	if err != nil {
		return nil, err
	}

	slides := make([]PptxSlide, 0, count)
	for p := 0; p < count; p++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(p, 150)
		if err != nil {
			return nil, fmt.Errorf("pdf to powerpoint: render page %d: %w", p+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("slide_%03d.jpg", p+1))
		if err := writeJPEG(path, img, 90); err != nil {
			return nil, fmt.Errorf("pdf to powerpoint: encode page %d: %w", p+1, err)
		}

		bounds := img.Bounds()
		slides = append(slides, PptxSlide{ImagePath: path, WidthPx: bounds.Dx(), HeightPx: bounds.Dy()})
	}

	out := scratch(req, "presentation", ".pptx")
	if err := WritePptx(out, slides); err != nil {
		return nil, fmt.Errorf("pdf to powerpoint: %w", err)
	}
	return fileResult(out, "presentation-blinkpdf.pptx", MimePptx), nil
}

// FromPowerpoint renders the deck's text content into a PDF, one section
// per slide.
func (o *Ops) FromPowerpoint(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text, err := ReadPptxText(req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("powerpoint to pdf: %w", err)
	}

	out := scratch(req, "presentation", ".pdf")
	if err := textToPDF(out, text); err != nil {
		return nil, fmt.Errorf("powerpoint to pdf: render: %w", err)
	}
	return fileResult(out, "presentation-blinkpdf.pdf", MimePDF), nil
}
