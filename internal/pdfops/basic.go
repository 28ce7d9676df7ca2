package pdfops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// Merge combines every uploaded PDF, in upload order, into one document.
func (o *Ops) Merge(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	out := scratch(req, "merged", ".pdf")
	if err := api.MergeCreateFile(req.InputPaths(), out, false, conf()); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return fileResult(out, "merged-blinkpdf.pdf", MimePDF), nil
}

// Split writes the selected page range as one PDF when a "pages" spec is
// given, otherwise one PDF per page, zipped.
func (o *Ops) Split(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	in := req.Primary().Path
	count, err := api.PageCountFile(in)
	if err != nil {
		return nil, fmt.Errorf("split: page count: %w", err)
	}

	if spec := req.Opts.Str("pages"); spec != "" {
		pages := ParsePageRanges(spec, count)
		if len(pages) == 0 {
			pages = allPages(count)
		}
		out := scratch(req, "split", ".pdf")
		if err := api.TrimFile(in, out, selection(pages), conf()); err != nil {
			return nil, fmt.Errorf("split: trim: %w", err)
		}
		return fileResult(out, "split-blinkpdf.pdf", MimePDF), nil
	}

	dir, err := subdir(req, "pages")
	if err != nil {
		return nil, err
	}
	for p := 1; p <= count; p++ {
		page := filepath.Join(dir, fmt.Sprintf("page_%d.pdf", p))
		if err := api.TrimFile(in, page, selection([]int{p}), conf()); err != nil {
			return nil, fmt.Errorf("split: page %d: %w", p, err)
		}
	}
	zipPath, err := zipDir(req, dir, "split-pages")
	if err != nil {
		return nil, err
	}
	return fileResult(zipPath, "split-pages-blinkpdf.zip", MimeZip), nil
}

// Rotate turns the selected pages by the normalized angle. The normalizer
// guarantees the angle is one of 0, 90, 180, 270.
func (o *Ops) Rotate(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	in := req.Primary().Path
	angle := int(req.Opts.Int("rotation_angle"))

	var sel []string
	if spec := req.Opts.Str("pages"); spec != "" {
		count, err := api.PageCountFile(in)
		if err != nil {
			return nil, fmt.Errorf("rotate: page count: %w", err)
		}
		if pages := ParsePageRanges(spec, count); len(pages) > 0 {
			sel = selection(pages)
		}
	}

	out := scratch(req, "rotated", ".pdf")
	if err := api.RotateFile(in, out, angle, sel, conf()); err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	return fileResult(out, "rotated-blinkpdf.pdf", MimePDF), nil
}

// Optimize garbage collects and recompresses the document's streams.
func (o *Ops) Optimize(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	out := scratch(req, "optimized", ".pdf")
	if err := api.OptimizeFile(req.Primary().Path, out, conf()); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	return fileResult(out, "optimized-blinkpdf.pdf", MimePDF), nil
}

// Repair re-reads the document in relaxed validation mode and rewrites it,
// which recovers the common classes of xref and stream damage.
func (o *Ops) Repair(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	out := scratch(req, "repaired", ".pdf")
	if err := api.OptimizeFile(req.Primary().Path, out, conf()); err != nil {
		return nil, fmt.Errorf("repair: %w", err)
	}
	return fileResult(out, "repaired-blinkpdf.pdf", MimePDF), nil
}

// Organize applies an explicit page order and/or a delete list. Order is
// applied first, deletions are honored inside it.
func (o *Ops) Organize(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	in := req.Primary().Path
	count, err := api.PageCountFile(in)
	if err != nil {
		return nil, fmt.Errorf("organize: page count: %w", err)
	}

	orderSpec := req.Opts.Str("page_order")
	deleteSpec := req.Opts.Str("delete_pages")

	// A delete spec that parses to nothing deletes nothing.
	deleted := make(map[int]bool)
	for _, p := range ParsePageRanges(deleteSpec, count) {
		deleted[p] = true
	}

	order := ParsePageRanges(orderSpec, count)
	if len(order) == 0 {
		order = allPages(count)
	}

	var keep []int
	for _, p := range order {
		if !deleted[p] {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("organize: no pages left to keep")
	}

	out := scratch(req, "organized", ".pdf")
	if err := api.CollectFile(in, out, selection(keep), conf()); err != nil {
		return nil, fmt.Errorf("organize: collect: %w", err)
	}
	return fileResult(out, "organized-blinkpdf.pdf", MimePDF), nil
}

// Protect encrypts the document with the supplied password.
func (o *Ops) Protect(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	password := req.Opts.Str("password")
	if password == "" {
		return nil, fmt.Errorf("protect: password is required")
	}

	c := conf()
	c.UserPW = password
	c.OwnerPW = password

	out := scratch(req, "protected", ".pdf")
	if err := api.EncryptFile(req.Primary().Path, out, c); err != nil {
		return nil, fmt.Errorf("protect: encrypt: %w", err)
	}
	return fileResult(out, "protected-blinkpdf.pdf", MimePDF), nil
}

// Unlock decrypts the document. An empty password is attempted as-is, which
// handles owner-password-only documents.
func (o *Ops) Unlock(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	c := conf()
	c.UserPW = req.Opts.Str("password")
	c.OwnerPW = c.UserPW

	out := scratch(req, "unlocked", ".pdf")
	if err := api.DecryptFile(req.Primary().Path, out, c); err != nil {
		return nil, fmt.Errorf("unlock: decrypt: %w", err)
	}
	return fileResult(out, "unlocked-blinkpdf.pdf", MimePDF), nil
}

// Crop shrinks every page's visible box by the requested margins (points).
func (o *Ops) Crop(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	top := req.Opts.Int("margin_top")
	right := req.Opts.Int("margin_right")
	bottom := req.Opts.Int("margin_bottom")
	left := req.Opts.Int("margin_left")

	// pdfcpu margin syntax is "top right bottom left".
	desc := fmt.Sprintf("%d %d %d %d", top, right, bottom, left)
	box, err := api.Box(desc, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("crop: box %q: %w", desc, err)
	}

	out := scratch(req, "cropped", ".pdf")
	if err := api.CropFile(req.Primary().Path, out, nil, box, conf()); err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}
	return fileResult(out, "cropped-blinkpdf.pdf", MimePDF), nil
}
