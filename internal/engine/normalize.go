package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blinkpdf/blinkpdf/internal/tool"
)

// Normalizer converts raw web input into a typed OperationRequest, or
// rejects it. It is the only place form fields are parsed; routines receive
// coerced values and nothing else.
type Normalizer struct {
	registry *tool.Registry
}

// NewNormalizer creates a normalizer over the given registry.
func NewNormalizer(registry *tool.Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize validates tool id, file arity and options. It never panics and
// never writes to storage; the error result is the only failure signal.
func (n *Normalizer) Normalize(toolID string, files []Upload, form url.Values) (*OperationRequest, *OperationError) {
	desc, ok := n.registry.Lookup(toolID)
	if !ok {
		return nil, BadInput(fmt.Sprintf("unknown tool %q", toolID))
	}

	if len(files) == 0 {
		return nil, BadInput("no input files provided")
	}
	if desc.Arity == tool.SingleFile && len(files) > 1 {
		return nil, BadInput(fmt.Sprintf("tool %q accepts a single file, got %d", desc.ID, len(files)))
	}
	if min := desc.MinFiles(); len(files) < min {
		return nil, BadInput(fmt.Sprintf("tool %q requires at least %d files, got %d", desc.ID, min, len(files)))
	}

	inputs := make([]Upload, len(files))
	for i, f := range files {
		inputs[i] = Upload{
			Name: SanitizeFilename(f.Name),
			Path: f.Path,
			Size: f.Size,
		}
	}

	opts := make(Options, len(desc.Options))
	for _, spec := range desc.Options {
		raw, present := lookupField(form, spec)
		if !present {
			opts[spec.Name] = spec.Default
			continue
		}
		val, err := coerce(spec, raw)
		if err != nil {
			return nil, err
		}
		opts[spec.Name] = val
	}

	return &OperationRequest{
		ToolID: desc.ID,
		Inputs: inputs,
		Opts:   opts,
	}, nil
}

// lookupField reads the canonical field name first, then each declared
// historical alias. Unknown form keys are never consulted, which is how they
// end up silently dropped.
func lookupField(form url.Values, spec tool.OptionSpec) (string, bool) {
	if form.Has(spec.Name) {
		return form.Get(spec.Name), true
	}
	for _, alias := range spec.Aliases {
		if form.Has(alias) {
			return form.Get(alias), true
		}
	}
	return "", false
}

func coerce(spec tool.OptionSpec, raw string) (any, *OperationError) {
	switch spec.Type {
	case tool.String:
		return raw, nil

	case tool.Bool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, UnsupportedOption(fmt.Sprintf("option %q: %q is not a boolean", spec.Name, raw))

	case tool.Int:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, UnsupportedOption(fmt.Sprintf("option %q: %q is not an integer", spec.Name, raw))
		}
		if len(spec.Allowed) > 0 {
			v = snapToAllowed(v, spec.Allowed)
		}
		v = int64(clamp(float64(v), spec.Min, spec.Max))
		return v, nil

	case tool.Float:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, UnsupportedOption(fmt.Sprintf("option %q: %q is not a number", spec.Name, raw))
		}
		return clamp(v, spec.Min, spec.Max), nil

	case tool.Enum:
		for _, allowed := range spec.Enum {
			if raw == allowed {
				return raw, nil
			}
		}
		return nil, UnsupportedOption(fmt.Sprintf("option %q: %q is not one of %v", spec.Name, raw, spec.Enum))

	case tool.JSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, UnsupportedOption(fmt.Sprintf("option %q: malformed JSON", spec.Name))
		}
		return v, nil
	}
	return nil, UnsupportedOption(fmt.Sprintf("option %q: unknown schema type", spec.Name))
}

// snapToAllowed maps v to the nearest member of allowed. UI sliders send
// arbitrary values; snapping instead of rejecting keeps them from ever being
// a hard failure. Ties round up.
func snapToAllowed(v int64, allowed []int64) int64 {
	best := allowed[0]
	bestDist := math.Abs(float64(v - best))
	for _, a := range allowed[1:] {
		dist := math.Abs(float64(v - a))
		if dist < bestDist || (dist == bestDist && a > best) {
			best, bestDist = a, dist
		}
	}
	return best
}

func clamp(v float64, min, max *float64) float64 {
	if min != nil && v < *min {
		return *min
	}
	if max != nil && v > *max {
		return *max
	}
	return v
}

// SanitizeFilename strips directory components and control characters from a
// client-supplied filename. The result is metadata only.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}
