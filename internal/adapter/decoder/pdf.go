package decoder

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

const MIMETypePDF = "application/pdf"

type PDFDecoder struct{}

// Decode implements port.DocumentDecoder.
func (d *PDFDecoder) Decode(ctx context.Context, raw []byte) (pages []string, err error) {
	// The parser panics on some malformed inputs
	defer func() {
		if recovered := recover(); recovered != nil {
			pages = nil
			err = errors.WithStack(fmt.Errorf("%w: pdf parser panicked: %v", port.ErrDecode, recovered))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.WithStack(fmt.Errorf("%w: %w", port.ErrDecode, err))
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		page := reader.Page(i)

		// Pages without content still count
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errors.WithStack(fmt.Errorf("%w: page %d: %w", port.ErrDecode, i, err))
		}

		pages = append(pages, text)
	}

	return pages, nil
}

func (d *PDFDecoder) SupportedMIMETypes() []string {
	return []string{MIMETypePDF}
}

func NewPDFDecoder() *PDFDecoder {
	return &PDFDecoder{}
}

var _ port.DocumentDecoder = &PDFDecoder{}
