// Package decode turns raw exported files into importer.RawTable values.
package decode

import (
	"path/filepath"
	"strings"

	"github.com/cleared-dev/budgetcsv/internal/importer"
)

// Decoder converts an exported file into a RawTable.
type Decoder interface {
	Decode(data []byte, encoding string) (importer.RawTable, error)
	Format() string
}

// Registry holds named decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on duplicate format.
func (r *Registry) Register(d Decoder) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// ForFile returns the decoder matching a file's extension, or nil.
func (r *Registry) ForFile(name string) Decoder {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return nil
	}
	return r.Get(ext)
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVDecoder{})
	r.Register(&XLSXDecoder{})
	return r
}
