package tool

// Option names below are the canonical ones; Aliases absorb the field names
// older frontends still send.

func fptr(v float64) *float64 { return &v }

// Catalog returns the descriptors for every tool the service exposes,
// in presentation order.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			ID: "merge-pdf", Title: "Merge PDF", Category: "PDF",
			Description: "Combine multiple PDF files into one document",
			Arity:       MultiFile, MinInputs: 2,
		},
		{
			ID: "split-pdf", Title: "Split PDF", Category: "PDF",
			Description: "Split a PDF into multiple files",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "pages", Type: String, Default: "", Aliases: []string{"page_ranges", "ranges"}},
			},
		},
		{
			ID: "compress-pdf", Title: "Compress PDF", Category: "PDF",
			Description: "Reduce PDF size without losing quality",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "level", Type: Enum, Default: "2", Enum: []string{"1", "2", "3"}, Aliases: []string{"quality", "compression_level"}},
			},
		},
		{
			ID: "optimize-pdf", Title: "Optimize PDF", Category: "PDF",
			Description: "Optimize PDF for web and mobile",
			Arity:       SingleFile,
		},
		{
			ID: "rotate-pdf", Title: "Rotate PDF", Category: "PDF",
			Description: "Rotate pages at any angle",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "rotation_angle", Type: Int, Default: int64(90), Allowed: []int64{0, 90, 180, 270}, Aliases: []string{"angle", "rotation"}},
				{Name: "pages", Type: String, Default: "", Aliases: []string{"page_ranges"}},
			},
		},
		{
			ID: "watermark-pdf", Title: "Watermark PDF", Category: "PDF",
			Description: "Add watermark text or image",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "watermark_text", Type: String, Default: "BlinkPDF", Aliases: []string{"text", "wm_text"}},
				{Name: "opacity", Type: Float, Default: 0.15, Min: fptr(0.02), Max: fptr(1.0)},
			},
		},
		{
			ID: "number-pdf", Title: "Number Pages", Category: "PDF",
			Description: "Insert page numbers in PDF",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "position", Type: Enum, Default: "bottom-right",
					Enum:    []string{"bottom-right", "bottom-left", "top-right", "top-left", "bottom-center", "top-center"},
					Aliases: []string{"pos"}},
			},
		},
		{
			ID: "protect-pdf", Title: "Protect PDF", Category: "PDF",
			Description: "Add password to PDF file",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "password", Type: String, Default: "", Aliases: []string{"pass", "pwd"}},
			},
		},
		{
			ID: "unlock-pdf", Title: "Unlock PDF", Category: "PDF",
			Description: "Remove password from a PDF",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "password", Type: String, Default: "", Aliases: []string{"pass", "pwd"}},
			},
		},
		{
			ID: "repair-pdf", Title: "Repair PDF", Category: "PDF",
			Description: "Fix corrupted PDF files",
			Arity:       SingleFile,
		},
		{
			ID: "organize-pdf", Title: "Organize PDF", Category: "PDF",
			Description: "Rearrange PDF pages",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "page_order", Type: String, Default: "", Aliases: []string{"order"}},
				{Name: "delete_pages", Type: String, Default: "", Aliases: []string{"deleted_pages", "remove_pages"}},
			},
		},
		{
			ID: "sign-pdf", Title: "Sign PDF", Category: "PDF",
			Description: "Sign your PDF electronically",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "signature_text", Type: String, Default: "Signed with BlinkPDF", Aliases: []string{"signature"}},
			},
		},
		{
			ID: "annotate-pdf", Title: "Annotate PDF", Category: "PDF",
			Description: "Add notes & comments",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "annot_text", Type: String, Default: "", Aliases: []string{"annotation", "note"}},
			},
		},
		{
			ID: "redact-pdf", Title: "Redact PDF", Category: "PDF",
			Description: "Hide confidential content",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "redact_text", Type: String, Default: "", Aliases: []string{"redact"}},
			},
		},
		{
			ID: "pdf-to-word", Title: "PDF to Word", Category: "Convert",
			Description: "Convert PDF to DOCX file",
			Arity:       SingleFile,
		},
		{
			ID: "word-to-pdf", Title: "Word to PDF", Category: "Convert",
			Description: "Convert DOCX to PDF",
			Arity:       SingleFile,
		},
		{
			ID: "pdf-to-image", Title: "PDF to Image", Category: "Convert",
			Description: "Convert PDF pages to images",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "dpi", Type: Int, Default: int64(150), Min: fptr(36), Max: fptr(600), Aliases: []string{"resolution"}},
			},
		},
		{
			ID: "image-to-pdf", Title: "Image to PDF", Category: "Convert",
			Description: "Convert images to PDF",
			Arity:       MultiFile,
		},
		{
			ID: "pdf-to-excel", Title: "PDF to Excel", Category: "Convert",
			Description: "Convert PDF data to Excel",
			Arity:       SingleFile,
		},
		{
			ID: "excel-to-pdf", Title: "Excel to PDF", Category: "Convert",
			Description: "Convert XLSX to PDF",
			Arity:       SingleFile,
		},
		{
			ID: "pdf-to-powerpoint", Title: "PDF to PowerPoint", Category: "Convert",
			Description: "PDF to PPTX",
			Arity:       SingleFile,
		},
		{
			ID: "powerpoint-to-pdf", Title: "PowerPoint to PDF", Category: "Convert",
			Description: "PPTX to PDF",
			Arity:       SingleFile,
		},
		{
			ID: "ocr-pdf", Title: "OCR PDF", Category: "Extract",
			Description: "Extract text using OCR",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "language", Type: String, Default: "eng", Aliases: []string{"lang"}},
			},
		},
		{
			ID: "extract-text", Title: "Extract Text", Category: "Extract",
			Description: "Extract text from PDF",
			Arity:       SingleFile,
		},
		{
			ID: "extract-images", Title: "Extract Images", Category: "Extract",
			Description: "Extract images from PDF",
			Arity:       SingleFile,
		},
		{
			ID: "deskew-pdf", Title: "Deskew PDF", Category: "Layout",
			Description: "Fix tilted PDF pages",
			Arity:       SingleFile,
		},
		{
			ID: "crop-pdf", Title: "Crop PDF", Category: "Layout",
			Description: "Crop PDF margins",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "margin_top", Type: Int, Default: int64(0), Min: fptr(0), Max: fptr(400)},
				{Name: "margin_right", Type: Int, Default: int64(0), Min: fptr(0), Max: fptr(400)},
				{Name: "margin_bottom", Type: Int, Default: int64(0), Min: fptr(0), Max: fptr(400)},
				{Name: "margin_left", Type: Int, Default: int64(0), Min: fptr(0), Max: fptr(400)},
			},
		},
		{
			ID: "resize-pdf", Title: "Resize PDF", Category: "Layout",
			Description: "Resize PDF pages",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "scale", Type: Float, Default: 1.0, Min: fptr(0.1), Max: fptr(4.0)},
			},
		},
		{
			ID: "flatten-pdf", Title: "Flatten PDF", Category: "Layout",
			Description: "Flatten form fields",
			Arity:       SingleFile,
		},
		{
			ID: "metadata-editor", Title: "Metadata Editor", Category: "PDF",
			Description: "Edit PDF metadata",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "metadata_json", Type: JSON, Default: map[string]any{}, Aliases: []string{"metadata"}},
			},
		},
		{
			ID: "fill-forms", Title: "Fill PDF Forms", Category: "PDF",
			Description: "Fill & save PDF forms",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "form_data_json", Type: JSON, Default: map[string]any{}, Aliases: []string{"form_data", "fields"}},
			},
		},
		{
			ID: "background-remover", Title: "Remove Background", Category: "Layout",
			Description: "Remove image background",
			Arity:       SingleFile,
		},

		// AI tools, gated on GEMINI_API_KEY at dispatch time.
		{
			ID: "summarizer", Title: "AI Summarizer", Category: "AI",
			Description: "Summarize your PDF using AI",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "prompt", Type: String, Default: "", Aliases: []string{"instructions"}},
			},
		},
		{
			ID: "translator", Title: "AI Translator", Category: "AI",
			Description: "Translate PDF into any language",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "target_language", Type: String, Default: "English", Aliases: []string{"language", "target"}},
			},
		},
		{
			ID: "chat", Title: "Chat with PDF", Category: "AI",
			Description: "Ask questions from your PDF",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "question", Type: String, Default: "", Aliases: []string{"query", "prompt"}},
			},
		},
		{
			ID: "table-extract", Title: "AI Table Extractor", Category: "AI",
			Description: "Extract tables using AI",
			Arity:       SingleFile,
		},
		{
			ID: "editor", Title: "AI PDF Editor", Category: "AI",
			Description: "Edit PDF documents with AI",
			Arity:       SingleFile,
			Options: []OptionSpec{
				{Name: "prompt", Type: String, Default: "", Aliases: []string{"instructions"}},
			},
		},
	}
}

// Aliases maps the tool slugs older copies of the frontend used to the
// canonical ids above. Consulted by Registry.Lookup before primary lookup.
func Aliases() map[string]string {
	return map[string]string{
		"pdf-to-jpg":   "pdf-to-image",
		"jpg-to-pdf":   "image-to-pdf",
		"pdf-to-ppt":   "pdf-to-powerpoint",
		"ppt-to-pdf":   "powerpoint-to-pdf",
		"numbers-pdf":  "number-pdf",
		"ai-summarize": "summarizer",
		"ai-translate": "translator",
		"ai-chat":      "chat",
	}
}

// DefaultRegistry builds the registry from the literal catalog.
func DefaultRegistry() *Registry {
	return NewRegistry(Catalog(), Aliases())
}
