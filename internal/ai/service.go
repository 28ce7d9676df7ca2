package ai

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/blinkpdf/blinkpdf/internal/engine"
	"github.com/blinkpdf/blinkpdf/internal/pdfops"
)

// The document text sent to the model is capped so arbitrary uploads cannot
// blow past the context window.
const maxDocumentChars = 120_000

const (
	MimeText = "text/plain; charset=utf-8"
	MimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service exposes the AI tool handlers. A nil client means Gemini is not
// configured and every handler reports a missing dependency.
type Service struct {
	client *Client
}

// NewService wraps the (possibly nil) Gemini client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Handlers returns the dispatch table entries for the AI tools.
func (s *Service) Handlers() map[string]engine.Handler {
	return map[string]engine.Handler{
		"summarizer":    s.Summarize,
		"translator":    s.Translate,
		"chat":          s.Chat,
		"table-extract": s.TableExtract,
		"editor":        s.Edit,
	}
}

// documentText pulls the upload's text layer, clipped to the prompt budget.
func (s *Service) documentText(ctx context.Context, req *engine.OperationRequest) (string, error) {
	text, err := pdfops.DocumentText(ctx, req.Primary().Path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document has no extractable text")
	}
	return clipDocument(text, maxDocumentChars), nil
}

// clipDocument truncates text to at most max bytes without splitting a rune.
func clipDocument(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

func (s *Service) generate(ctx context.Context, req *engine.OperationRequest, system, task string) (string, error) {
	if s.client == nil {
		return "", errNoKey()
	}

	text, err := s.documentText(ctx, req)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("%s\n\nDocument:\n%s", task, text)
	return s.client.Generate(ctx, system, prompt)
}

func textResult(req *engine.OperationRequest, prefix, filename, content string) (*engine.ConversionResult, error) {
	path := filepath.Join(req.WorkDir, fmt.Sprintf("%s-%s.txt", prefix, uuid.NewString()))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	return &engine.ConversionResult{Path: path, Filename: filename, ContentType: MimeText}, nil
}

// Summarize produces a concise summary of the document.
func (s *Service) Summarize(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	task := "Summarize the document below. Lead with a one-paragraph overview, then list the key points."
	if extra := req.Opts.Str("prompt"); extra != "" {
		task = fmt.Sprintf("%s Additional instructions: %s", task, extra)
	}

	out, err := s.generate(ctx, req, "You are a careful document analyst.", task)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return textResult(req, "summary", "summary-blinkpdf.txt", out)
}

// Translate renders the document text in the target language.
func (s *Service) Translate(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	lang := req.Opts.Str("target_language")
	task := fmt.Sprintf("Translate the document below into %s. Preserve paragraph structure. Output only the translation.", lang)

	out, err := s.generate(ctx, req, "You are a professional translator.", task)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return textResult(req, "translation", "translation-blinkpdf.txt", out)
}

// Chat answers a free-form question about the document.
func (s *Service) Chat(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	question := req.Opts.Str("question")
	if strings.TrimSpace(question) == "" {
		return nil, engine.BadInput("question is required")
	}
	task := fmt.Sprintf("Answer the following question using only the document below. Question: %s", question)

	out, err := s.generate(ctx, req, "You answer questions strictly from the provided document.", task)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return textResult(req, "answer", "answer-blinkpdf.txt", out)
}

// Edit rewrites the document text per the caller's instructions.
func (s *Service) Edit(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	instructions := req.Opts.Str("prompt")
	if strings.TrimSpace(instructions) == "" {
		return nil, engine.BadInput("prompt is required")
	}
	task := fmt.Sprintf("Rewrite the document below following these instructions, outputting only the edited text: %s", instructions)

	out, err := s.generate(ctx, req, "You are a precise copy editor.", task)
	if err != nil {
		return nil, fmt.Errorf("edit: %w", err)
	}
	return textResult(req, "edited", "edited-blinkpdf.txt", out)
}

// TableExtract asks the model for CSV rows and writes them to a workbook.
func (s *Service) TableExtract(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	task := "Extract every table from the document below as CSV. Output only CSV rows, one table after another, with no commentary and no code fences."

	out, err := s.generate(ctx, req, "You extract tabular data exactly as it appears.", task)
	if err != nil {
		return nil, fmt.Errorf("table extract: %w", err)
	}

	rows, err := parseLooseCSV(out)
	if err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("table extract: no tables found in model output")
	}

	path := filepath.Join(req.WorkDir, fmt.Sprintf("tables-%s.xlsx", uuid.NewString()))
	if err := writeRows(path, rows); err != nil {
		return nil, fmt.Errorf("table extract: %w", err)
	}
	return &engine.ConversionResult{Path: path, Filename: "tables-blinkpdf.xlsx", ContentType: MimeXlsx}, nil
}

// parseLooseCSV tolerates ragged rows and stray code fences in model output.
func parseLooseCSV(raw string) ([][]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```csv")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	r := csv.NewReader(strings.NewReader(strings.TrimSpace(raw)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func writeRows(path string, rows [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := wb.SetCellValue("Sheet1", cell, val); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}
	return wb.SaveAs(path)
}
