package converter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	learningSvc "smartlearn/internal/domain/services/learning"
)

// pdfConverter extracts the plain text of every page, in page order.
// Tabs become spaces so the text reads cleanly inside a prompt.
type pdfConverter struct{}

func NewPDFConverter() learningSvc.ContentConverter {
	return &pdfConverter{}
}

func (c *pdfConverter) Convert(ctx context.Context, input []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(input), int64(len(input)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		sb.WriteString(pageText)
	}

	return strings.ReplaceAll(sb.String(), "\t", " "), nil
}

func (c *pdfConverter) SupportedExtensions() []string {
	return []string{".pdf"}
}

func (c *pdfConverter) Name() string {
	return "pdf"
}
