package pdfops

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// columnSplit breaks a text line into cells on tabs or runs of 2+ spaces.
var columnSplit = regexp.MustCompile(`\t+| {2,}`)

// textToPDF lays plain text out as a paginated A4 document.
func textToPDF(path, text string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(strings.ReplaceAll(text, "\f", "\n"), "\n") {
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}
	return pdf.OutputFileAndClose(path)
}

// ToWord exports the document's text layer as a docx, one paragraph per
// non-empty line. Layout is not reconstructed.
func (o *Ops) ToWord(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text, err := DocumentText(ctx, req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("pdf to word: %w", err)
	}

	doc := docx.New().WithDefaultTheme()
	for _, line := range strings.Split(strings.ReplaceAll(text, "\f", "\n"), "\n") {
		line = strings.TrimRight(line, " ")
		if line == "" {
			continue
		}
		doc.AddParagraph().AddText(line)
	}

	out := scratch(req, "document", ".docx")
	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("pdf to word: create: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("pdf to word: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("pdf to word: close: %w", err)
	}
	return fileResult(out, "document-blinkpdf.docx", MimeDocx), nil
}

// FromWord renders a docx's paragraph text into a PDF.
func (o *Ops) FromWord(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	in := req.Primary()
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("word to pdf: open: %w", err)
	}
	defer f.Close()

	doc, err := docx.Parse(f, in.Size)
	if err != nil {
		return nil, fmt.Errorf("word to pdf: parse: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(p.String())
			sb.WriteString("\n")
		}
	}

	out := scratch(req, "document", ".pdf")
	if err := textToPDF(out, sb.String()); err != nil {
		return nil, fmt.Errorf("word to pdf: render: %w", err)
	}
	return fileResult(out, "document-blinkpdf.pdf", MimePDF), nil
}

// ToExcel splits the text layer into rows and columns (tabs or wide space
// runs) and writes one worksheet per page.
func (o *Ops) ToExcel(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	text, err := DocumentText(ctx, req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("pdf to excel: %w", err)
	}

	out := scratch(req, "workbook", ".xlsx")
	if err := textToWorkbook(out, text); err != nil {
		return nil, fmt.Errorf("pdf to excel: %w", err)
	}
	return fileResult(out, "workbook-blinkpdf.xlsx", MimeXlsx), nil
}

// textToWorkbook writes form-feed separated page text into an xlsx, one
// sheet per page. Shared with the AI table extractor.
func textToWorkbook(path, text string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	pages := strings.Split(text, "\f")
	sheetIdx := 0
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		sheetIdx++
		sheet := fmt.Sprintf("Page %d", sheetIdx)
		if sheetIdx == 1 {
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}

		row := 0
		for _, line := range strings.Split(page, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			row++
			for col, cellVal := range columnSplit.Split(strings.TrimSpace(line), -1) {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return fmt.Errorf("cell name: %w", err)
				}
				if err := wb.SetCellValue(sheet, cell, cellVal); err != nil {
					return fmt.Errorf("set cell: %w", err)
				}
			}
		}
	}
	if sheetIdx == 0 {
		return fmt.Errorf("document has no extractable text")
	}
	return wb.SaveAs(path)
}

// FromExcel renders every worksheet's cells into a PDF, one line per row
// with cells joined by wide gaps.
func (o *Ops) FromExcel(ctx context.Context, req *engine.OperationRequest) (*engine.ConversionResult, error) {
	wb, err := excelize.OpenFile(req.Primary().Path)
	if err != nil {
		return nil, fmt.Errorf("excel to pdf: open: %w", err)
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("excel to pdf: sheet %s: %w", sheet, err)
		}
		sb.WriteString(sheet)
		sb.WriteString("\n\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "    "))
			sb.WriteString("\n")
		}
		sb.WriteString("\f")
	}

	out := scratch(req, "workbook", ".pdf")
	if err := textToPDF(out, sb.String()); err != nil {
		return nil, fmt.Errorf("excel to pdf: render: %w", err)
	}
	return fileResult(out, "workbook-blinkpdf.pdf", MimePDF), nil
}
