package ingest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

const (
	typePDF  = "application/pdf"
	typeDoc  = "application/msword"
	typeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedFileType is returned for any content type outside the
// accepted PDF/DOC/DOCX set.
var ErrUnsupportedFileType = errors.New("unsupported file type, upload PDF or DOCX")

// ErrMissingDependency is returned when the runtime lacks the external
// tool needed to extract a legacy .doc file.
var ErrMissingDependency = errors.New("document extraction tool not available")

// ExtractText reads the staged file at path and returns its plain text.
// Empty output is not an error here; the splitter rejects it downstream.
func ExtractText(path, contentType string) (string, error) {
	switch contentType {
	case typePDF:
		return extractPDF(path)
	case typeDocx:
		return extractDocx(path)
	case typeDoc:
		return extractDoc(path)
	default:
		return "", ErrUnsupportedFileType
	}
}

// extractPDF extracts text page by page, preserving page order.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("failed to extract docx text: %w", err)
	}
	return text, nil
}

// extractDoc handles legacy .doc files. docconv shells out to wvText for
// these, so a missing binary is a missing capability, not a bad upload.
func extractDoc(path string) (string, error) {
	if _, err := exec.LookPath("wvText"); err != nil {
		return "", fmt.Errorf("%w: wvText not found in PATH", ErrMissingDependency)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open doc: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDoc(f)
	if err != nil {
		return "", fmt.Errorf("failed to extract doc text: %w", err)
	}
	return text, nil
}
