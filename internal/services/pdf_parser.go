package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnreadablePDF = errors.New("unreadable pdf")
	ErrEmptyPage     = errors.New("page has no extractable text")
)

// ExtractionMode decides what happens to pages that fail to decode or carry no text.
type ExtractionMode int

const (
	// ModeLenient skips such pages.
	ModeLenient ExtractionMode = iota
	// ModeStrict fails the whole document on the first such page.
	ModeStrict
)

func (m ExtractionMode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// ParseExtractionMode accepts "strict" or "lenient" (empty means lenient).
func ParseExtractionMode(s string) (ExtractionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ModeLenient, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeLenient, fmt.Errorf("unknown extraction mode: %q", s)
	}
}

// ParseError reports a PDF that could not be turned into text.
// Page is 1-based; zero means the document itself could not be opened.
type ParseError struct {
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("parse pdf page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("parse pdf: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractReader(r io.ReaderAt, size int64) (string, error)
	ExtractFile(filePath string) (string, error)
	Mode() ExtractionMode
}

type pdfParserService struct {
	mode ExtractionMode
}

func NewPDFParserService(mode ExtractionMode) PDFParserService {
	return &pdfParserService{mode: mode}
}

func (p *pdfParserService) Mode() ExtractionMode {
	return p.mode
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	return p.ExtractReader(bytes.NewReader(data), int64(len(data)))
}

// ExtractFile implements PDFParserService.
func (p *pdfParserService) ExtractFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return p.ExtractText(data)
}

// ExtractReader implements PDFParserService. Each page's text is followed by a
// newline, in page order. No normalization is applied.
func (p *pdfParserService) ExtractReader(ra io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Err: fmt.Errorf("%w: %v", ErrUnreadablePDF, r)}
		}
	}()

	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", &ParseError{Err: fmt.Errorf("%w: %v", ErrUnreadablePDF, err)}
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		pageText, err := extractPage(r, pageIndex)
		if err != nil {
			if p.mode == ModeStrict {
				return "", &ParseError{Page: pageIndex, Err: err}
			}
			continue
		}

		if pageText == "" {
			if p.mode == ModeStrict {
				return "", &ParseError{Page: pageIndex, Err: ErrEmptyPage}
			}
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractPage(r *pdf.Reader, pageIndex int) (string, error) {
	page := r.Page(pageIndex)
	if page.V.IsNull() {
		return "", fmt.Errorf("%w: missing page object", ErrUnreadablePDF)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	return text, nil
}
