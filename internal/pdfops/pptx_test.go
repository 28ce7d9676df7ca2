package pdfops

import (
	"archive/zip"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestJPEG(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	require.NoError(t, writeJPEG(path, img, 80))
	return path
}

func TestWritePptx_PackageStructure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deck.pptx")

	slides := []PptxSlide{
		{ImagePath: writeTestJPEG(t, dir, "s1.jpg"), WidthPx: 40, HeightPx: 30},
		{ImagePath: writeTestJPEG(t, dir, "s2.jpg"), WidthPx: 40, HeightPx: 30},
	}
	require.NoError(t, WritePptx(out, slides))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	parts := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = true
	}

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.jpg",
		"ppt/media/image2.jpg",
	} {
		assert.True(t, parts[want], "missing package part %s", want)
	}
}

func TestWritePptx_RejectsEmptyDeck(t *testing.T) {
	err := WritePptx(filepath.Join(t.TempDir(), "deck.pptx"), nil)
	assert.Error(t, err)
}

func TestReadPptxText_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deck.pptx")

	slides := []PptxSlide{
		{ImagePath: writeTestJPEG(t, dir, "s1.jpg"), WidthPx: 40, HeightPx: 30},
	}
	require.NoError(t, WritePptx(out, slides))

	// Picture-only slides carry no text runs, but the reader must still
	// find and walk every slide part, emitting one form feed per slide.
	text, err := ReadPptxText(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, "\f"))
}
