package decoder

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

func TestTextDecoder(t *testing.T) {
	pages, err := NewTextDecoder().Decode(context.Background(), []byte("first page\fsecond page\f"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(pages); e != g {
		t.Fatalf("len(pages): expected %d, got %d", e, g)
	}

	if e, g := "second page", pages[1]; e != g {
		t.Errorf("pages[1]: expected '%s', got '%s'", e, g)
	}

	if _, err := NewTextDecoder().Decode(context.Background(), []byte{0xff, 0xfe, 0xfd}); !errors.Is(err, port.ErrDecode) {
		t.Errorf("Decode(invalid): expected error matching ErrDecode, got '%v'", err)
	}
}

func TestPDFDecoder(t *testing.T) {
	texts := []string{"hello first", "second page here", "third"}

	pages, err := NewPDFDecoder().Decode(context.Background(), buildPDF(texts...))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := len(texts), len(pages); e != g {
		t.Fatalf("len(pages): expected %d, got %d", e, g)
	}

	for i, text := range texts {
		// The extractor prefixes the text with a line break when the text
		// position moves
		if e, g := text, strings.TrimSpace(pages[i]); e != g {
			t.Errorf("pages[%d]: expected '%s', got '%s'", i, e, g)
		}
	}

	routed, err := NewRoutedDecoder(NewPDFDecoder(), NewTextDecoder()).Decode(context.Background(), buildPDF(texts...))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := len(texts), len(routed); e != g {
		t.Errorf("len(routed): expected %d, got %d", e, g)
	}
}

// buildPDF returns a minimal PDF document with one line of text per page.
func buildPDF(texts ...string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	kids := make([]string, 0, len(texts))

	for _, text := range texts {
		pageID := len(objects) + 1
		contentID := pageID + 1

		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)

		kids = append(kids, fmt.Sprintf("%d 0 R", pageID))
	}

	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(texts))

	var buff bytes.Buffer

	buff.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buff.Len()
		fmt.Fprintf(&buff, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buff.Len()

	fmt.Fprintf(&buff, "xref\n0 %d\n", len(objects)+1)
	buff.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buff, "%010d 00000 n \n", offset)
	}

	fmt.Fprintf(&buff, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buff.Bytes()
}

func TestPDFDecoderMalformed(t *testing.T) {
	testCases := map[string][]byte{
		"empty":     {},
		"not a pdf": []byte("hello world"),
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
	}

	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			pages, err := NewPDFDecoder().Decode(context.Background(), raw)
			if !errors.Is(err, port.ErrDecode) {
				t.Errorf("Decode(): expected error matching ErrDecode, got '%v'", err)
			}

			if pages != nil {
				t.Errorf("Decode(): expected no page, got %d", len(pages))
			}
		})
	}
}

func TestRoutedDecoder(t *testing.T) {
	decoder := NewRoutedDecoder(NewPDFDecoder(), NewTextDecoder())

	pages, err := decoder.Decode(context.Background(), []byte("plain text document\fwith two pages"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(pages); e != g {
		t.Errorf("len(pages): expected %d, got %d", e, g)
	}

	// PNG signature
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}

	_, err = decoder.Decode(context.Background(), png)
	if !errors.Is(err, port.ErrDecode) {
		t.Errorf("Decode(png): expected error matching ErrDecode, got '%v'", err)
	}

	if !errors.Is(err, port.ErrNotSupported) {
		t.Errorf("Decode(png): expected error matching ErrNotSupported, got '%v'", err)
	}

	if _, err := decoder.Decode(context.Background(), []byte("%PDF-1.7\ngarbage")); !errors.Is(err, port.ErrDecode) {
		t.Errorf("Decode(pdf): expected error matching ErrDecode, got '%v'", err)
	}
}
