package flatjson

import (
	"encoding/json"

	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "flatjson" }

func (e *Exporter) Export(locale string, items []ports.ExportItem) ([]byte, error) {
	out := make(map[string]string, len(items))
	for _, it := range items {
		v := it.Translation
		if v == "" {
			v = it.SourceText
		}
		out[it.Path] = v
	}
	return json.MarshalIndent(out, "", "  ")
}
