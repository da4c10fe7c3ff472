package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// ExtractorService turns a stored document into plain text. Unreadable or
// empty documents yield the empty string, never an error: a scanned or
// corrupt resume is an expected condition for the pipeline, not a crash.
type ExtractorService interface {
	ExtractText(filePath string) string
}

type extractorService struct {
	log *zap.SugaredLogger
}

func NewExtractorService(log *zap.SugaredLogger) ExtractorService {
	return &extractorService{log: log}
}

func (e *extractorService) ExtractText(filePath string) string {
	var text string

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text = e.extractPDF(filePath)
	case ".docx":
		text = e.extractDocx(filePath)
	case ".txt":
		text = e.extractPlain(filePath)
	default:
		e.log.Warnw("unsupported document type", "path", filePath)
		return ""
	}

	text = CleanText(text)
	e.log.Infow("text extracted", "path", filePath, "chars", len(text))
	return text
}

func (e *extractorService) extractPDF(filePath string) string {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		e.log.Warnw("failed to open pdf", "path", filePath, "error", err)
		return ""
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String()
}

func (e *extractorService) extractDocx(filePath string) string {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		e.log.Warnw("failed to open docx", "path", filePath, "error", err)
		return ""
	}
	defer doc.Close()

	return doc.Editable().GetContent()
}

func (e *extractorService) extractPlain(filePath string) string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		e.log.Warnw("failed to read text file", "path", filePath, "error", err)
		return ""
	}
	return string(data)
}

// CleanText trims each line and drops blank ones, normalizing the whitespace
// noise PDF extraction tends to produce.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
