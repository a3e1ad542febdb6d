package decoder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

type Decoder interface {
	port.DocumentDecoder
	SupportedMIMETypes() []string
}

// RoutedDecoder sniffs the content type of the document and hands it to the
// first decoder supporting it.
type RoutedDecoder struct {
	decoders []Decoder
}

// Decode implements port.DocumentDecoder.
func (d *RoutedDecoder) Decode(ctx context.Context, raw []byte) ([]string, error) {
	mimeType := mimetype.Detect(raw)

	for _, dec := range d.decoders {
		for _, supported := range dec.SupportedMIMETypes() {
			if !mimeType.Is(supported) {
				continue
			}

			slog.DebugContext(ctx, "decoding document", slog.String("mimeType", mimeType.String()))

			pages, err := dec.Decode(ctx, raw)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			return pages, nil
		}
	}

	return nil, errors.WithStack(fmt.Errorf("%w: unsupported content type '%s': %w", port.ErrDecode, mimeType.String(), port.ErrNotSupported))
}

func (d *RoutedDecoder) SupportedMIMETypes() []string {
	supported := make([]string, 0)
	for _, dec := range d.decoders {
		supported = append(supported, dec.SupportedMIMETypes()...)
	}
	return supported
}

func NewRoutedDecoder(decoders ...Decoder) *RoutedDecoder {
	return &RoutedDecoder{
		decoders: decoders,
	}
}

var _ Decoder = &RoutedDecoder{}
