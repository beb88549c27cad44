package converter

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	learningSvc "smartlearn/internal/domain/services/learning"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// textConverter passes plain text and markdown through unchanged
// after checking the encoding.
type textConverter struct{}

func NewTextConverter() learningSvc.ContentConverter {
	return &textConverter{}
}

// Convert drops a leading byte-order mark; anything else is returned as-is
func (c *textConverter) Convert(ctx context.Context, input []byte) (string, error) {
	if !utf8.Valid(input) {
		return "", errInvalidUTF8
	}
	return strings.TrimPrefix(string(input), "\ufeff"), nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text", ".md", ".markdown"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
