package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LookupRoundTrip(t *testing.T) {
	r := DefaultRegistry()

	for _, desc := range r.All() {
		got, ok := r.Lookup(desc.ID)
		require.True(t, ok, "catalog id %q must resolve", desc.ID)
		assert.Equal(t, desc.ID, got.ID)
	}
}

func TestRegistry_UnknownID(t *testing.T) {
	r := DefaultRegistry()

	for _, id := range []string{"", "no-such-tool", "MERGE-PDF", "merge_pdf"} {
		_, ok := r.Lookup(id)
		assert.False(t, ok, "id %q must not resolve", id)
	}
}

func TestRegistry_Aliases(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		alias     string
		canonical string
	}{
		{"pdf-to-jpg", "pdf-to-image"},
		{"jpg-to-pdf", "image-to-pdf"},
		{"pdf-to-ppt", "pdf-to-powerpoint"},
		{"ppt-to-pdf", "powerpoint-to-pdf"},
		{"ai-summarize", "summarizer"},
		{"ai-chat", "chat"},
	}
	for _, tc := range tests {
		desc, ok := r.Lookup(tc.alias)
		require.True(t, ok, "alias %q must resolve", tc.alias)
		assert.Equal(t, tc.canonical, desc.ID)
	}
}

func TestRegistry_InsertionOrder(t *testing.T) {
	descriptors := []Descriptor{
		{ID: "c-tool"}, {ID: "a-tool"}, {ID: "b-tool"},
	}
	r := NewRegistry(descriptors, nil)

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c-tool", all[0].ID)
	assert.Equal(t, "a-tool", all[1].ID)
	assert.Equal(t, "b-tool", all[2].ID)
}

func TestRegistry_DuplicateIDsSkipped(t *testing.T) {
	descriptors := []Descriptor{
		{ID: "dup", Title: "first"},
		{ID: "dup", Title: "second"},
	}
	r := NewRegistry(descriptors, nil)

	assert.Equal(t, 1, r.Len())
	desc, ok := r.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, "first", desc.Title)
}
