package engine

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkpdf/blinkpdf/internal/tool"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(tool.DefaultRegistry())
}

func onePDF() []Upload {
	return []Upload{{Name: "doc.pdf", Path: "/tmp/in-1", Size: 1024}}
}

func TestNormalize_UnknownTool(t *testing.T) {
	_, opErr := testNormalizer().Normalize("no-such-tool", onePDF(), url.Values{})
	require.NotNil(t, opErr)
	assert.Equal(t, KindBadInput, opErr.Kind)
}

func TestNormalize_Arity(t *testing.T) {
	n := testNormalizer()

	t.Run("zero files rejected", func(t *testing.T) {
		_, opErr := n.Normalize("rotate-pdf", nil, url.Values{})
		require.NotNil(t, opErr)
		assert.Equal(t, KindBadInput, opErr.Kind)
	})

	t.Run("single-file tool rejects two files", func(t *testing.T) {
		files := []Upload{
			{Name: "a.pdf", Path: "/tmp/a"},
			{Name: "b.pdf", Path: "/tmp/b"},
		}
		_, opErr := n.Normalize("rotate-pdf", files, url.Values{})
		require.NotNil(t, opErr)
		assert.Equal(t, KindBadInput, opErr.Kind)
	})

	t.Run("merge rejects one file", func(t *testing.T) {
		_, opErr := n.Normalize("merge-pdf", onePDF(), url.Values{})
		require.NotNil(t, opErr)
		assert.Equal(t, KindBadInput, opErr.Kind)
	})

	t.Run("merge accepts two files", func(t *testing.T) {
		files := []Upload{
			{Name: "a.pdf", Path: "/tmp/a"},
			{Name: "b.pdf", Path: "/tmp/b"},
		}
		req, opErr := n.Normalize("merge-pdf", files, url.Values{})
		require.Nil(t, opErr)
		assert.Len(t, req.Inputs, 2)
	})
}

func TestNormalize_EmptyFormYieldsDefaults(t *testing.T) {
	req, opErr := testNormalizer().Normalize("rotate-pdf", onePDF(), url.Values{})
	require.Nil(t, opErr)

	assert.Equal(t, int64(90), req.Opts.Int("rotation_angle"))
	assert.Equal(t, "", req.Opts.Str("pages"))
}

func TestNormalize_RotationSnapsToAllowed(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"90", 90},
		{"45", 90},  // tie between 0 and 90 rounds up
		{"135", 180}, // tie between 90 and 180 rounds up
		{"44", 0},
		{"100", 90},
		{"269", 270},
		{"9999", 270},
		{"-40", 0},
	}
	n := testNormalizer()
	for _, tc := range tests {
		form := url.Values{"rotation_angle": {tc.raw}}
		req, opErr := n.Normalize("rotate-pdf", onePDF(), form)
		require.Nil(t, opErr, "raw %q", tc.raw)
		assert.Equal(t, tc.want, req.Opts.Int("rotation_angle"), "raw %q", tc.raw)
	}
}

func TestNormalize_RotationRejectsNonInteger(t *testing.T) {
	form := url.Values{"rotation_angle": {"ninety"}}
	_, opErr := testNormalizer().Normalize("rotate-pdf", onePDF(), form)
	require.NotNil(t, opErr)
	assert.Equal(t, KindUnsupportedOption, opErr.Kind)
}

func TestNormalize_OptionAliases(t *testing.T) {
	n := testNormalizer()

	t.Run("alias resolves to canonical name", func(t *testing.T) {
		form := url.Values{"angle": {"180"}}
		req, opErr := n.Normalize("rotate-pdf", onePDF(), form)
		require.Nil(t, opErr)
		assert.Equal(t, int64(180), req.Opts.Int("rotation_angle"))
	})

	t.Run("canonical name wins over alias", func(t *testing.T) {
		form := url.Values{"rotation_angle": {"270"}, "angle": {"90"}}
		req, opErr := n.Normalize("rotate-pdf", onePDF(), form)
		require.Nil(t, opErr)
		assert.Equal(t, int64(270), req.Opts.Int("rotation_angle"))
	})
}

func TestNormalize_UnknownKeysDropped(t *testing.T) {
	form := url.Values{
		"rotation_angle": {"90"},
		"utm_source":     {"homepage"},
		"debug":          {"true"},
	}
	req, opErr := testNormalizer().Normalize("rotate-pdf", onePDF(), form)
	require.Nil(t, opErr)

	_, hasUTM := req.Opts["utm_source"]
	_, hasDebug := req.Opts["debug"]
	assert.False(t, hasUTM)
	assert.False(t, hasDebug)
}

func TestNormalize_EnumMembership(t *testing.T) {
	n := testNormalizer()

	for _, level := range []string{"1", "2", "3"} {
		form := url.Values{"level": {level}}
		req, opErr := n.Normalize("compress-pdf", onePDF(), form)
		require.Nil(t, opErr, "level %q", level)
		assert.Equal(t, level, req.Opts.Str("level"))
	}

	form := url.Values{"level": {"9"}}
	_, opErr := n.Normalize("compress-pdf", onePDF(), form)
	require.NotNil(t, opErr)
	assert.Equal(t, KindUnsupportedOption, opErr.Kind)
}

func TestNormalize_FloatClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"0.5", 0.5},
		{"0.001", 0.02},
		{"7", 1.0},
	}
	n := testNormalizer()
	for _, tc := range tests {
		form := url.Values{"opacity": {tc.raw}}
		req, opErr := n.Normalize("watermark-pdf", onePDF(), form)
		require.Nil(t, opErr, "raw %q", tc.raw)
		assert.InDelta(t, tc.want, req.Opts.Float("opacity"), 1e-9, "raw %q", tc.raw)
	}
}

func TestNormalize_IntClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"150", 150},
		{"10", 36},
		{"5000", 600},
	}
	n := testNormalizer()
	for _, tc := range tests {
		form := url.Values{"dpi": {tc.raw}}
		req, opErr := n.Normalize("pdf-to-image", onePDF(), form)
		require.Nil(t, opErr, "raw %q", tc.raw)
		assert.Equal(t, tc.want, req.Opts.Int("dpi"), "raw %q", tc.raw)
	}
}

func TestNormalize_JSONOption(t *testing.T) {
	n := testNormalizer()

	t.Run("valid object", func(t *testing.T) {
		form := url.Values{"metadata_json": {`{"Title":"Q3 Report","Author":"Ops"}`}}
		req, opErr := n.Normalize("metadata-editor", onePDF(), form)
		require.Nil(t, opErr)
		meta := req.Opts.JSONMap("metadata_json")
		assert.Equal(t, "Q3 Report", meta["Title"])
	})

	t.Run("malformed rejected", func(t *testing.T) {
		form := url.Values{"metadata_json": {`{"Title":`}}
		_, opErr := n.Normalize("metadata-editor", onePDF(), form)
		require.NotNil(t, opErr)
		assert.Equal(t, KindUnsupportedOption, opErr.Kind)
	})
}

func TestNormalize_ToolAliasAccepted(t *testing.T) {
	req, opErr := testNormalizer().Normalize("pdf-to-jpg", onePDF(), url.Values{})
	require.Nil(t, opErr)
	assert.Equal(t, "pdf-to-image", req.ToolID)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\foo\doc.pdf`, "doc.pdf"},
		{"we\x00ird\x1f.pdf", "weird.pdf"},
		{"", "upload"},
		{"..", "upload"},
		{"   ", "upload"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}
