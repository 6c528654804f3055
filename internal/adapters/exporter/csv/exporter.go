package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(locale string, items []ports.ExportItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"key", "source", "translation"}); err != nil {
		return nil, err
	}
	for _, it := range items {
		v := it.Translation
		if v == "" {
			v = it.SourceText
		}
		if err := w.Write([]string{it.Path, it.SourceText, v}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
