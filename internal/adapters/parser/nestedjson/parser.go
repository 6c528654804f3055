// Package nestedjson parses nested JSON localization files into flat
// dot-path keys.
package nestedjson

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/flatten"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "nestedjson" }

func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	flat, err := flatten.Flatten(stripBOM(data))
	if err != nil {
		return ports.ParseResult{}, fmt.Errorf("parse nested json: %w", err)
	}
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	keys := make([]*domain.Key, 0, len(paths))
	for _, path := range paths {
		keys = append(keys, &domain.Key{Path: path, SourceText: flat[path]})
	}
	return ports.ParseResult{Keys: keys}, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
