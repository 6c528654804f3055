// Package exporter renders a file's keys and translations back into a
// localization file.
package exporter

import (
	"context"
	"fmt"
	"strings"

	exreg "github.com/yunweneric/lingo-desk/internal/adapters/exporter/registry"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Service struct {
	Files ports.FileRepository
	Keys  ports.KeyRepository
	Trans ports.TranslationRepository
	Reg   *exreg.Registry
}

func New(files ports.FileRepository, keys ports.KeyRepository, trans ports.TranslationRepository, reg *exreg.Registry) *Service {
	return &Service{Files: files, Keys: keys, Trans: trans, Reg: reg}
}

type ExportArgs struct {
	FileID         int64
	Locale         string
	Fallback       bool   // fill untranslated keys with source text
	OverrideFormat string // optional
}

type ExportResult struct {
	Filename string
	Content  []byte
}

func (s *Service) ExportFile(ctx context.Context, a ExportArgs) (ExportResult, error) {
	f, err := s.Files.Get(ctx, a.FileID)
	if err != nil {
		return ExportResult{}, err
	}
	format := f.Format
	if a.OverrideFormat != "" {
		format = a.OverrideFormat
	}
	exp, ok := s.Reg.Get(format)
	if !ok {
		return ExportResult{}, fmt.Errorf("no exporter for format: %s", format)
	}
	keys, err := s.Keys.ListByFile(ctx, f.ID)
	if err != nil {
		return ExportResult{}, err
	}
	trList, err := s.Trans.ListByFileLocale(ctx, f.ID, a.Locale)
	if err != nil {
		return ExportResult{}, err
	}
	trByKey := map[int64]*domain.Translation{}
	for _, t := range trList {
		trByKey[t.KeyID] = t
	}
	items := make([]ports.ExportItem, 0, len(keys))
	for _, k := range keys {
		text := ""
		if t, ok := trByKey[k.ID]; ok {
			text = t.Text
		}
		// Whitespace-only counts as missing, like everywhere else.
		if strings.TrimSpace(text) == "" {
			if !a.Fallback {
				continue
			}
			text = ""
		}
		items = append(items, ports.ExportItem{Path: k.Path, SourceText: k.SourceText, Translation: text})
	}
	content, err := exp.Export(a.Locale, items)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Filename: f.Path, Content: content}, nil
}
