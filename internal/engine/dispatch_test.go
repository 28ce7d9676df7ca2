package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(toolID string) *OperationRequest {
	return &OperationRequest{
		ToolID: toolID,
		Inputs: []Upload{{Name: "doc.pdf", Path: "/tmp/in"}},
		Opts:   Options{},
	}
}

func TestDispatch_Success(t *testing.T) {
	want := &ConversionResult{Path: "/tmp/out", Filename: "out.pdf", ContentType: "application/pdf"}
	d := NewDispatcher(map[string]Handler{
		"ok-tool": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			return want, nil
		},
	}, zerolog.Nop())

	got, opErr := d.Dispatch(context.Background(), testRequest("ok-tool"))
	require.Nil(t, opErr)
	assert.Equal(t, want, got)
}

func TestDispatch_TableMiss(t *testing.T) {
	d := NewDispatcher(map[string]Handler{}, zerolog.Nop())

	result, opErr := d.Dispatch(context.Background(), testRequest("ghost-tool"))
	assert.Nil(t, result)
	require.NotNil(t, opErr)
	assert.Equal(t, KindBadInput, opErr.Kind)
}

func TestDispatch_PanicBecomesProcessingFailure(t *testing.T) {
	d := NewDispatcher(map[string]Handler{
		"panicky": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			panic("corrupt xref table")
		},
	}, zerolog.Nop())

	result, opErr := d.Dispatch(context.Background(), testRequest("panicky"))
	assert.Nil(t, result)
	require.NotNil(t, opErr)
	assert.Equal(t, KindProcessingFailure, opErr.Kind)
	assert.NotContains(t, opErr.Message, "xref", "panic detail must not leak")
}

func TestDispatch_MissingDependency(t *testing.T) {
	d := NewDispatcher(map[string]Handler{
		"needs-binary": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			return nil, fmt.Errorf("tesseract binary not found on PATH: %w", ErrMissingDependency)
		},
	}, zerolog.Nop())

	result, opErr := d.Dispatch(context.Background(), testRequest("needs-binary"))
	assert.Nil(t, result)
	require.NotNil(t, opErr)
	assert.Equal(t, KindMissingDependency, opErr.Kind)
	assert.Contains(t, opErr.Message, "tesseract")
}

func TestDispatch_GenericErrorHidesCause(t *testing.T) {
	d := NewDispatcher(map[string]Handler{
		"failing": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			return nil, errors.New("pdfcpu: invalid object stream at offset 4096")
		},
	}, zerolog.Nop())

	result, opErr := d.Dispatch(context.Background(), testRequest("failing"))
	assert.Nil(t, result)
	require.NotNil(t, opErr)
	assert.Equal(t, KindProcessingFailure, opErr.Kind)
	assert.Equal(t, "processing failed for this tool", opErr.Message)
}

func TestDispatch_HandlerClassifiedErrorPassesThrough(t *testing.T) {
	d := NewDispatcher(map[string]Handler{
		"strict": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			return nil, BadInput("question is required")
		},
	}, zerolog.Nop())

	result, opErr := d.Dispatch(context.Background(), testRequest("strict"))
	assert.Nil(t, result)
	require.NotNil(t, opErr)
	assert.Equal(t, KindBadInput, opErr.Kind)
	assert.Equal(t, "question is required", opErr.Message)
}

func TestDispatch_HasHandler(t *testing.T) {
	d := NewDispatcher(map[string]Handler{
		"present": func(ctx context.Context, req *OperationRequest) (*ConversionResult, error) {
			return nil, nil
		},
	}, zerolog.Nop())

	assert.True(t, d.HasHandler("present"))
	assert.False(t, d.HasHandler("absent"))
}
