package port

import "context"

// DocumentDecoder extracts the text of each page of a raw document.
// Decoding is all-or-nothing: on failure no page is returned and the error
// matches ErrDecode.
type DocumentDecoder interface {
	Decode(ctx context.Context, raw []byte) ([]string, error)
}
