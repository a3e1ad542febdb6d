package model

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// DocumentID names a fetchable document inside the configured remote namespace.
type DocumentID string

// Validate checks that the identifier is a relative path which stays inside
// the namespace it is joined to.
func (id DocumentID) Validate() error {
	raw := string(id)

	if strings.TrimSpace(raw) == "" {
		return errors.New("identifier is empty")
	}

	if strings.HasPrefix(raw, "/") || strings.Contains(raw, `\`) {
		return errors.Errorf("identifier '%s' must be a relative path", raw)
	}

	for _, segment := range strings.Split(raw, "/") {
		if segment == ".." {
			return errors.Errorf("identifier '%s' must not contain '..'", raw)
		}
	}

	if cleaned := path.Clean(raw); cleaned == "." {
		return errors.Errorf("identifier '%s' does not name a document", raw)
	}

	return nil
}

// CachedDocument is the decoded representation of a fetched document.
// It is never mutated after construction.
type CachedDocument struct {
	raw   []byte
	pages []string
}

// Raw returns the undecoded document bytes. Callers must not modify them.
func (d *CachedDocument) Raw() []byte {
	return d.raw
}

// Pages returns the extracted text of each page, index 0 being page 1.
func (d *CachedDocument) Pages() []string {
	return d.pages
}

func (d *CachedDocument) PageCount() int {
	return len(d.pages)
}

func (d *CachedDocument) Size() int {
	return len(d.raw)
}

func NewCachedDocument(raw []byte, pages []string) *CachedDocument {
	return &CachedDocument{
		raw:   raw,
		pages: pages,
	}
}
