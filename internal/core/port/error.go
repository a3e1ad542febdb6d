package port

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrCanceled      = errors.New("canceled")
	ErrNotSupported  = errors.New("not supported")
	ErrFetch         = errors.New("could not fetch document")
	ErrUnavailable   = errors.New("object store unavailable")
	ErrDecode        = errors.New("could not decode document")
	ErrNotCached     = errors.New("document not cached")
	ErrInvalidID     = errors.New("invalid document identifier")
	ErrUpstreamParse = errors.New("could not parse upstream response")
)
