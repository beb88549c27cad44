package converter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ForName(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		file     string
		wantName string
		wantErr  bool
	}{
		{name: "text", file: "textbook_content.txt", wantName: "plaintext"},
		{name: "markdown upper case", file: "notes/CHAPTER.MD", wantName: "plaintext"},
		{name: "no extension", file: "textbook", wantName: "plaintext"},
		{name: "html", file: "s3://bucket/lesson.htm", wantName: "html"},
		{name: "pdf", file: "s3://bucket/books/physics.pdf", wantName: "pdf"},
		{name: "unsupported", file: "slides.pptx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.ForName(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported file type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}

func TestRegistry_RegisterNormalizesExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(stubConverter{exts: []string{"EPUB"}})

	assert.NotNil(t, r.Lookup(".epub"))
	assert.NotNil(t, r.Lookup("epub"))
}

func TestTextConverter(t *testing.T) {
	c := NewTextConverter()

	got, err := c.Convert(context.Background(), []byte("\ufeffThe water cycle"))
	require.NoError(t, err)
	assert.Equal(t, "The water cycle", got)

	_, err = c.Convert(context.Background(), []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, errInvalidUTF8)
}

func TestHTMLConverter_SanitizesBeforeConverting(t *testing.T) {
	c := NewHTMLConverter()

	input := `<h1>Water</h1><p>The <strong>cycle</strong> repeats.</p><script>alert("x")</script>`
	got, err := c.Convert(context.Background(), []byte(input))
	require.NoError(t, err)

	assert.Contains(t, got, "# Water")
	assert.Contains(t, got, "**cycle**")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "<script")
}

func TestPDFConverter_RejectsNonPDF(t *testing.T) {
	c := NewPDFConverter()

	_, err := c.Convert(context.Background(), []byte("definitely not a pdf"))
	assert.Error(t, err)
}

// onePagePDF assembles a minimal PDF whose single page shows text with Helvetica.
// Object offsets in the xref table are computed as the file is written.
func onePagePDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPDFConverter_ExtractsTextAndReplacesTabs(t *testing.T) {
	c := NewPDFConverter()

	got, err := c.Convert(context.Background(), onePagePDF("Water\tcycle"))
	require.NoError(t, err)

	assert.Equal(t, "Water cycle", strings.TrimSpace(got))
	assert.NotContains(t, got, "\t")
}

func TestRegistry_ConvertsPDFByName(t *testing.T) {
	c, err := NewRegistry().ForName("books/water.pdf")
	require.NoError(t, err)

	got, err := c.Convert(context.Background(), onePagePDF("Rain falls"))
	require.NoError(t, err)
	assert.Equal(t, "Rain falls", strings.TrimSpace(got))
}

type stubConverter struct {
	exts []string
}

func (s stubConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return string(input), nil
}
func (s stubConverter) SupportedExtensions() []string { return s.exts }
func (s stubConverter) Name() string                  { return "stub" }
