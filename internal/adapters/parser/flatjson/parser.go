// Package flatjson parses already-flat JSON localization files
// ({ "key": "value", ... }, one level deep).
package flatjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "flatjson" }

func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	data = stripBOM(data)
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ports.ParseResult{}, fmt.Errorf("invalid json: %w", err)
	}
	keys := make([]*domain.Key, 0, len(m))
	for k, v := range m {
		// Skip metadata fields like $schema.
		if len(k) > 0 && k[0] == '$' {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		keys = append(keys, &domain.Key{Path: k, SourceText: s})
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
