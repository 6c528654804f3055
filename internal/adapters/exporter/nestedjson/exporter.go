// Package nestedjson re-nests flat dot-path keys into nested JSON on export.
package nestedjson

import (
	"fmt"

	"github.com/yunweneric/lingo-desk/internal/flatten"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "nestedjson" }

func (e *Exporter) Export(locale string, items []ports.ExportItem) ([]byte, error) {
	flat := make(map[string]string, len(items))
	for _, it := range items {
		v := it.Translation
		if v == "" {
			v = it.SourceText
		}
		flat[it.Path] = v
	}
	out, err := flatten.Nest(flat)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", locale, err)
	}
	return out, nil
}
