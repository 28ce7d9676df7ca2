package pdfops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// anchorFor translates the catalog's position enum into pdfcpu anchors.
var anchorFor = map[string]string{
	"bottom-right":  "br",
	"bottom-left":   "bl",
	"bottom-center": "bc",
	"top-right":     "tr",
	"top-left":      "tl",
	"top-center":    "tc",
}

func stampFile(in, out, text, desc string) error {
	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("parse stamp: %w", err)
	}
	return api.AddWatermarksFile(in, out, nil, wm, conf())
}

// Watermark lays the watermark text diagonally across every page.
func (o *Ops) Watermark(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text := req.Opts.Str("watermark_text")
	opacity := req.Opts.Float("opacity")

	desc := fmt.Sprintf("pos:c, rot:45, scale:0.8 rel, opacity:%.2f, fillcolor:#808080", opacity)
	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark: parse: %w", err)
	}

	out := scratch(req, "watermarked", ".pdf")
	if err := api.AddWatermarksFile(req.Primary().Path, out, nil, wm, conf()); err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return fileResult(out, "watermarked-blinkpdf.pdf", MimePDF), nil
}

// NumberPages stamps "n of N" at the chosen page corner.
func (o *Ops) NumberPages(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	anchor := anchorFor[req.Opts.Str("position")]
	if anchor == "" {
		anchor = "br"
	}

	desc := fmt.Sprintf("pos:%s, offset:15 15, scale:1 abs, fontsize:10, rot:0, fillcolor:#333333", anchor)
	out := scratch(req, "numbered", ".pdf")
	if err := stampFile(req.Primary().Path, out, "%p of %P", desc); err != nil {
		return nil, fmt.Errorf("number pages: %w", err)
	}
	return fileResult(out, "numbered-blinkpdf.pdf", MimePDF), nil
}

// Sign stamps the signature text at the bottom right of every page.
func (o *Ops) Sign(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text := req.Opts.Str("signature_text")

	desc := "pos:br, offset:20 20, scale:1 abs, fontsize:12, rot:0, fillcolor:#00008B"
	out := scratch(req, "signed", ".pdf")
	if err := stampFile(req.Primary().Path, out, text, desc); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return fileResult(out, "signed-blinkpdf.pdf", MimePDF), nil
}

// Annotate stamps a note in the top margin of every page. An empty note is
// rejected here rather than producing a blank stamp.
func (o *Ops) Annotate(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text := req.Opts.Str("annot_text")
	if text == "" {
		return nil, fmt.Errorf("annotate: annot_text is required")
	}

	desc := "pos:tc, offset:0 -20, scale:1 abs, fontsize:11, rot:0, fillcolor:#B22222"
	out := scratch(req, "annotated", ".pdf")
	if err := stampFile(req.Primary().Path, out, text, desc); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return fileResult(out, "annotated-blinkpdf.pdf", MimePDF), nil
}

// EditMetadata sets document properties from the metadata_json option.
// Values must be strings; anything else is stringified by the JSON decode.
func (o *Ops) EditMetadata(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	meta := req.Opts.JSONMap("metadata_json")

	props := make(map[string]string, len(meta))
	for k, v := range meta {
		props[k] = fmt.Sprintf("%v", v)
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("metadata: no properties given")
	}

	in := req.Primary().Path
	out := scratch(req, "metadata", ".pdf")
	if err := copyFile(in, out); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	if err := api.AddPropertiesFile(out, "", props, conf()); err != nil {
		return nil, fmt.Errorf("metadata: set properties: %w", err)
	}
	return fileResult(out, "metadata-blinkpdf.pdf", MimePDF), nil
}

// FillForms fills AcroForm text fields from the form_data_json option.
// pdfcpu's form API consumes a JSON description, so the request payload is
// rewrapped into that shape.
func (o *Ops) FillForms(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	data := req.Opts.JSONMap("form_data_json")
	if len(data) == 0 {
		return nil, fmt.Errorf("fill forms: no field values given")
	}

	type field struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	payload := struct {
		Forms []struct {
			TextField []field `json:"textfield"`
		} `json:"forms"`
	}{}
	payload.Forms = make([]struct {
		TextField []field `json:"textfield"`
	}, 1)
	for k, v := range data {
		payload.Forms[0].TextField = append(payload.Forms[0].TextField, field{Name: k, Value: fmt.Sprintf("%v", v)})
	}

	formJSON := scratch(req, "formdata", ".json")
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fill forms: encode: %w", err)
	}
	if err := os.WriteFile(formJSON, raw, 0o600); err != nil {
		return nil, fmt.Errorf("fill forms: write payload: %w", err)
	}

	out := scratch(req, "filled", ".pdf")
	if err := api.FillFormFile(req.Primary().Path, formJSON, out, conf()); err != nil {
		return nil, fmt.Errorf("fill forms: %w", err)
	}
	return fileResult(out, "filled-blinkpdf.pdf", MimePDF), nil
}

func copyFile(src, dst string) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, raw, 0o600)
}
