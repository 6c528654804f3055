// Package progress computes per-locale completion for the dashboard and
// feeds the editor's missing-translations filter.
package progress

import (
	"context"
	"strings"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Service struct {
	Projects ports.ProjectRepository
	Files    ports.FileRepository
	Keys     ports.KeyRepository
	Trans    ports.TranslationRepository
}

func New(projects ports.ProjectRepository, files ports.FileRepository, keys ports.KeyRepository, trans ports.TranslationRepository) *Service {
	return &Service{Projects: projects, Files: files, Keys: keys, Trans: trans}
}

// LocaleProgress is the completion of one target locale across a project.
type LocaleProgress struct {
	Locale  string  `json:"locale"`
	Total   int     `json:"total"`
	Filled  int     `json:"filled"`
	Percent float64 `json:"percent"`
}

// FileLocaleProgress is the completion of one target locale within one file.
type FileLocaleProgress struct {
	FileID  int64   `json:"file_id"`
	Path    string  `json:"path"`
	Locale  string  `json:"locale"`
	Total   int     `json:"total"`
	Filled  int     `json:"filled"`
	Percent float64 `json:"percent"`
}

// Row is one editor row: a key plus its translation state for a locale.
type Row struct {
	KeyID       int64  `json:"key_id"`
	Path        string `json:"path"`
	Source      string `json:"source"`
	Translation string `json:"translation"`
	Status      string `json:"status"`
}

// ProjectProgress returns completion for every target locale of the project.
// An empty project reports 100% complete.
func (s *Service) ProjectProgress(ctx context.Context, projectID int64) ([]LocaleProgress, error) {
	locales, err := s.Projects.ListLocales(ctx, projectID)
	if err != nil {
		return nil, err
	}
	total, err := s.Keys.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]LocaleProgress, 0, len(locales))
	for _, pl := range locales {
		filled, err := s.Trans.CountFilledByProject(ctx, projectID, pl.Locale)
		if err != nil {
			return nil, err
		}
		out = append(out, LocaleProgress{
			Locale:  pl.Locale,
			Total:   total,
			Filled:  filled,
			Percent: percent(filled, total),
		})
	}
	return out, nil
}

// FileProgress returns per-file completion for one locale.
func (s *Service) FileProgress(ctx context.Context, projectID int64, locale string) ([]FileLocaleProgress, error) {
	files, err := s.Files.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]FileLocaleProgress, 0, len(files))
	for _, f := range files {
		rows, err := s.Rows(ctx, f.ID, locale, false)
		if err != nil {
			return nil, err
		}
		filled := 0
		for _, r := range rows {
			if strings.TrimSpace(r.Translation) != "" {
				filled++
			}
		}
		out = append(out, FileLocaleProgress{
			FileID:  f.ID,
			Path:    f.Path,
			Locale:  locale,
			Total:   len(rows),
			Filled:  filled,
			Percent: percent(filled, len(rows)),
		})
	}
	return out, nil
}

// Rows assembles editor rows for a (file, locale) pair. With missingOnly
// set, only keys lacking a non-empty translation are returned.
func (s *Service) Rows(ctx context.Context, fileID int64, locale string, missingOnly bool) ([]Row, error) {
	keys, err := s.Keys.ListByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	trs, err := s.Trans.ListByFileLocale(ctx, fileID, locale)
	if err != nil {
		return nil, err
	}
	byKey := map[int64]*domain.Translation{}
	for _, t := range trs {
		byKey[t.KeyID] = t
	}
	out := make([]Row, 0, len(keys))
	for _, k := range keys {
		var text, status string
		if t := byKey[k.ID]; t != nil {
			text = t.Text
			status = t.Status
		}
		if missingOnly && strings.TrimSpace(text) != "" {
			continue
		}
		out = append(out, Row{KeyID: k.ID, Path: k.Path, Source: k.SourceText, Translation: text, Status: status})
	}
	return out, nil
}

func percent(filled, total int) float64 {
	if total == 0 {
		return 100.0
	}
	return float64(filled) / float64(total) * 100.0
}
