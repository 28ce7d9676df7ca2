package pdfops

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// compressTiers maps the compress "level" enum onto deterministic render
// settings. Higher levels trade resolution and JPEG quality for size.
var compressTiers = map[string]struct {
	zoom    float64
	quality int
}{
	"1": {zoom: 1.0, quality: 85},
	"2": {zoom: 0.75, quality: 70},
	"3": {zoom: 0.5, quality: 55},
}

// pageFilter selects rendered pages for post-processing before the rebuild.
type pageFilter func(img image.Image) image.Image

// rasterRebuild renders every page at the given DPI, optionally filters the
// raster, and reassembles a PDF whose page geometry is the original's times
// scale. The text layer does not survive the round trip.
func (o *Ops) rasterRebuild(ctx context.Context, req *engine.OperationRequest, dpi float64, quality int, scale float64, filter pageFilter) (string, error) {
	doc, err := fitz.New(req.Primary().Path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return "", fmt.Errorf("document has no pages")
	}

	dir, err := subdir(req, "raster")
	if err != nil {
		return "", err
	}

	out := fpdf.New("P", "pt", "A4", "")
	for p := 0; p < count; p++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		rendered, err := doc.ImageDPI(p, dpi)
		if err != nil {
			return "", fmt.Errorf("render page %d: %w", p+1, err)
		}
		var img image.Image = rendered
		if filter != nil {
			img = filter(img)
		}

		pagePath := filepath.Join(dir, fmt.Sprintf("page_%03d.jpg", p+1))
		if err := writeJPEG(pagePath, img, quality); err != nil {
			return "", fmt.Errorf("encode page %d: %w", p+1, err)
		}

		bounds := img.Bounds()
		wPt := float64(bounds.Dx()) * 72 / dpi * scale
		hPt := float64(bounds.Dy()) * 72 / dpi * scale
		orient := "P"
		if wPt > hPt {
			orient = "L"
		}
		out.AddPageFormat(orient, fpdf.SizeType{Wd: wPt, Ht: hPt})
		out.ImageOptions(pagePath, 0, 0, wPt, hPt, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	}

	path := scratch(req, "raster", ".pdf")
	if err := out.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("assemble pages: %w", err)
	}
	return path, nil
}

func writeJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Compress re-renders the document at the tier selected by "level".
func (o *Ops) Compress(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	tier, ok := compressTiers[req.Opts.Str("level")]
	if !ok {
		tier = compressTiers["2"]
	}

	path, err := o.rasterRebuild(ctx, req, 150*tier.zoom, tier.quality, 1.0, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return fileResult(path, "compressed-blinkpdf.pdf", MimePDF), nil
}

// ToImage renders each page as a JPEG at the requested DPI and zips them.
func (o *Ops) ToImage(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	dpi := float64(req.Opts.Int("dpi"))

	doc, err := fitz.New(req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("pdf to image: open: %w", err)
	}
	defer doc.Close()

	dir, err := subdir(req, "images")
	if err != nil {
		return nil, err
	}
	for p := 0; p < doc.NumPage(); p++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.ImageDPI(p, dpi)
		if err != nil {
			return nil, fmt.Errorf("pdf to image: render page %d: %w", p+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("page_%03d.jpg", p+1))
		if err := writeJPEG(path, img, 92); err != nil {
			return nil, fmt.Errorf("pdf to image: encode page %d: %w", p+1, err)
		}
	}

	zipPath, err := zipDir(req, dir, "pages")
	if err != nil {
		return nil, fmt.Errorf("pdf to image: %w", err)
	}
	return fileResult(zipPath, "pages-blinkpdf.zip", MimeZip), nil
}

// ImageToPDF converts the uploaded images, in upload order, into one PDF
// with one page per image.
func (o *Ops) ImageToPDF(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	out := scratch(req, "images", ".pdf")
	if err := api.ImportImagesFile(req.InputPaths(), out, nil, conf()); err != nil {
		return nil, fmt.Errorf("image to pdf: %w", err)
	}
	return fileResult(out, "images-blinkpdf.pdf", MimePDF), nil
}

// Flatten burns annotations, form fields and layers into the page raster.
func (o *Ops) Flatten(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	path, err := o.rasterRebuild(ctx, req, 150, 90, 1.0, nil)
	if err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	return fileResult(path, "flattened-blinkpdf.pdf", MimePDF), nil
}

// Redact removes the extractable text layer for documents containing the
// given text. The whole document is rebuilt as page rasters, so no text
// remains selectable or searchable.
func (o *Ops) Redact(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	needle := req.Opts.Str("redact_text")
	if needle != "" {
		doc, err := fitz.New(req.Primary().Path)
		if err != nil {
			return nil, fmt.Errorf("redact: open: %w", err)
		}
		found := false
		for p := 0; p < doc.NumPage() && !found; p++ {
			text, err := doc.Text(p)
			if err == nil && strings.Contains(text, needle) {
				found = true
			}
		}
		doc.Close()
		if !found {
			return nil, fmt.Errorf("redact: text %q not found in document", needle)
		}
	}

	path, err := o.rasterRebuild(ctx, req, 150, 88, 1.0, nil)
	if err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}
	return fileResult(path, "redacted-blinkpdf.pdf", MimePDF), nil
}

// Resize scales every page's physical dimensions by the "scale" factor.
func (o *Ops) Resize(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	scale := req.Opts.Float("scale")

	path, err := o.rasterRebuild(ctx, req, 150, 90, scale, nil)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	return fileResult(path, "resized-blinkpdf.pdf", MimePDF), nil
}

// Deskew straightens scanned pages by searching a small angle window for
// the rotation that maximizes the variance of row darkness, then rebuilds.
func (o *Ops) Deskew(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	filter := func(img image.Image) image.Image {
		gray := imaging.Grayscale(img)
		angle := estimateSkew(gray)
		if angle == 0 {
			return gray
		}
		return imaging.Rotate(gray, angle, color.White)
	}

	path, err := o.rasterRebuild(ctx, req, 150, 88, 1.0, filter)
	if err != nil {
		return nil, fmt.Errorf("deskew: %w", err)
	}
	return fileResult(path, "deskewed-blinkpdf.pdf", MimePDF), nil
}

// BackgroundRemover whitens scan backgrounds: grayscale, contrast boost,
// then a near-white threshold pass.
func (o *Ops) BackgroundRemover(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	filter := func(img image.Image) image.Image {
		out := imaging.AdjustContrast(imaging.Grayscale(img), 20)
		return imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			if c.R > 200 && c.G > 200 && c.B > 200 {
				return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
			}
			return c
		})
	}

	path, err := o.rasterRebuild(ctx, req, 150, 88, 1.0, filter)
	if err != nil {
		return nil, fmt.Errorf("background remover: %w", err)
	}
	return fileResult(path, "cleaned-blinkpdf.pdf", MimePDF), nil
}

// estimateSkew searches -3..+3 degrees in half-degree steps on a shrunken
// copy. Text rows concentrate darkness when the page is straight, which
// maximizes row-darkness variance.
func estimateSkew(img image.Image) float64 {
	small := imaging.Resize(img, 400, 0, imaging.Box)

	best, bestScore := 0.0, rowVariance(small)
	for angle := -3.0; angle <= 3.0; angle += 0.5 {
		if angle == 0 {
			continue
		}
		score := rowVariance(imaging.Rotate(small, angle, color.White))
		if score > bestScore {
			best, bestScore = angle, score
		}
	}
	return best
}

func rowVariance(img *image.NRGBA) float64 {
	b := img.Bounds()
	if b.Dy() == 0 || b.Dx() == 0 {
		return 0
	}

	rows := make([]float64, b.Dy())
	var total float64
	for y := 0; y < b.Dy(); y++ {
		var dark float64
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := (r + g + bl) / 3
			if lum < 0x8000 {
				dark++
			}
		}
		rows[y] = dark
		total += dark
	}

	mean := total / float64(len(rows))
	var variance float64
	for _, v := range rows {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(rows))
}
