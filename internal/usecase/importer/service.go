// Package importer turns uploaded localization files into stored keys.
package importer

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	parreg "github.com/yunweneric/lingo-desk/internal/adapters/parser/registry"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Service struct {
	Projects       ports.ProjectRepository
	Files          ports.FileRepository
	Keys           ports.KeyRepository
	ParserRegistry *parreg.Registry
	Hash           func([]byte) string
}

func New(projects ports.ProjectRepository, files ports.FileRepository, keys ports.KeyRepository, reg *parreg.Registry, hash func([]byte) string) *Service {
	return &Service{Projects: projects, Files: files, Keys: keys, ParserRegistry: reg, Hash: hash}
}

type ImportArgs struct {
	ProjectID int64
	Filename  string
	Format    string
	Locale    string
	Content   []byte
}

type ImportResult struct {
	FileID  int64
	Keys    int
	Updated bool // true when an existing file was re-imported
}

func (s *Service) Import(ctx context.Context, in ImportArgs) (ImportResult, error) {
	parser, ok := s.ParserRegistry.Get(in.Format)
	if !ok {
		return ImportResult{}, fmt.Errorf("unsupported format: %s", in.Format)
	}
	if err := s.validateLocale(ctx, in.ProjectID, in.Locale); err != nil {
		return ImportResult{}, err
	}
	pr, err := parser.Parse(in.Content)
	if err != nil {
		return ImportResult{}, err
	}

	f, err := s.Files.GetByPath(ctx, in.ProjectID, in.Filename)
	if err != nil {
		return ImportResult{}, err
	}
	updated := f != nil
	if f == nil {
		f = &domain.File{ProjectID: in.ProjectID, Path: in.Filename, Format: in.Format, Locale: in.Locale, Hash: s.Hash(in.Content)}
		if err := s.Files.Create(ctx, f); err != nil {
			return ImportResult{}, err
		}
	} else {
		f.Format = in.Format
		f.Locale = in.Locale
		f.Hash = s.Hash(in.Content)
		if err := s.Files.Update(ctx, f); err != nil {
			return ImportResult{}, err
		}
	}
	for _, k := range pr.Keys {
		k.FileID = f.ID
	}
	if err := s.Keys.UpsertBatch(ctx, pr.Keys); err != nil {
		return ImportResult{}, err
	}
	if updated {
		paths := make([]string, 0, len(pr.Keys))
		for _, k := range pr.Keys {
			paths = append(paths, k.Path)
		}
		// Keys dropped from the re-imported content come out of the store
		// too, so progress totals track the current file.
		if err := s.Keys.DeleteMissing(ctx, f.ID, paths); err != nil {
			return ImportResult{}, err
		}
	}
	return ImportResult{FileID: f.ID, Keys: len(pr.Keys), Updated: updated}, nil
}

// validateLocale rejects a file whose declared locale is not a well-formed
// language tag, or does not belong to the project (source language or one
// of the target locales).
func (s *Service) validateLocale(ctx context.Context, projectID int64, locale string) error {
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid language code %q: %w", locale, err)
	}
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if locale == p.SourceLang {
		return nil
	}
	locales, err := s.Projects.ListLocales(ctx, projectID)
	if err != nil {
		return err
	}
	for _, pl := range locales {
		if pl.Locale == locale {
			return nil
		}
	}
	return fmt.Errorf("file does not match expected language code: %q is not a locale of project %q", locale, p.Name)
}
