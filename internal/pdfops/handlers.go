package pdfops

import "github.com/blinkpdf/blinkpdf/internal/engine"

// Handlers returns the dispatch table for every PDF tool. The AI tools
// register their own handlers on top of this table.
func (o *Ops) Handlers() map[string]engine.Handler {
	return map[string]engine.Handler{
		"merge-pdf":          o.Merge,
		"split-pdf":          o.Split,
		"compress-pdf":       o.Compress,
		"optimize-pdf":       o.Optimize,
		"rotate-pdf":         o.Rotate,
		"watermark-pdf":      o.Watermark,
		"number-pdf":         o.NumberPages,
		"protect-pdf":        o.Protect,
		"unlock-pdf":         o.Unlock,
		"repair-pdf":         o.Repair,
		"organize-pdf":       o.Organize,
		"sign-pdf":           o.Sign,
		"annotate-pdf":       o.Annotate,
		"redact-pdf":         o.Redact,
		"pdf-to-word":        o.ToWord,
		"word-to-pdf":        o.FromWord,
		"pdf-to-image":       o.ToImage,
		"image-to-pdf":       o.ImageToPDF,
		"pdf-to-excel":       o.ToExcel,
		"excel-to-pdf":       o.FromExcel,
		"pdf-to-powerpoint":  o.ToPowerpoint,
		"powerpoint-to-pdf":  o.FromPowerpoint,
		"ocr-pdf":            o.OCR,
		"extract-text":       o.ExtractText,
		"extract-images":     o.ExtractImages,
		"deskew-pdf":         o.Deskew,
		"crop-pdf":           o.Crop,
		"resize-pdf":         o.Resize,
		"flatten-pdf":        o.Flatten,
		"metadata-editor":    o.EditMetadata,
		"fill-forms":         o.FillForms,
		"background-remover": o.BackgroundRemover,
	}
}
