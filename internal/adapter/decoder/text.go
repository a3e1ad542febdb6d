package decoder

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

const (
	MIMETypeText = "text/plain"
	pageBreak    = "\f"
)

// TextDecoder decodes plain text documents, splitting pages on form feeds.
type TextDecoder struct{}

// Decode implements port.DocumentDecoder.
func (d *TextDecoder) Decode(ctx context.Context, raw []byte) ([]string, error) {
	if !utf8.Valid(raw) {
		return nil, errors.WithStack(fmt.Errorf("%w: text is not valid utf-8", port.ErrDecode))
	}

	return strings.Split(string(raw), pageBreak), nil
}

func (d *TextDecoder) SupportedMIMETypes() []string {
	return []string{MIMETypeText}
}

func NewTextDecoder() *TextDecoder {
	return &TextDecoder{}
}

var _ port.DocumentDecoder = &TextDecoder{}
