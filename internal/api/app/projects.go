// Package app contains the API structs bound to the Wails frontend,
// one per screen concern.
package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type ProjectAPI struct {
	repo ports.ProjectRepository
}

func NewProjectAPI(repo ports.ProjectRepository) *ProjectAPI { return &ProjectAPI{repo: repo} }

func (a *ProjectAPI) Create(name, sourceLang string) (*domain.Project, error) {
	ctx := context.Background()
	if name == "" {
		return nil, errors.New("name is required")
	}
	if _, err := language.Parse(sourceLang); err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", sourceLang, err)
	}
	p := &domain.Project{Name: name, SourceLang: sourceLang}
	if err := a.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *ProjectAPI) Get(id int64) (*domain.Project, error) {
	return a.repo.Get(context.Background(), id)
}

func (a *ProjectAPI) List() ([]*domain.Project, error) {
	return a.repo.List(context.Background())
}

func (a *ProjectAPI) Update(id int64, name, sourceLang string) (*domain.Project, error) {
	ctx := context.Background()
	if _, err := language.Parse(sourceLang); err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", sourceLang, err)
	}
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.SourceLang = sourceLang
	if err := a.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *ProjectAPI) Delete(id int64) (bool, error) {
	return true, a.repo.Delete(context.Background(), id)
}

func (a *ProjectAPI) AddLocale(projectID int64, locale string) (*domain.ProjectLocale, error) {
	ctx := context.Background()
	if _, err := language.Parse(locale); err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	pl := &domain.ProjectLocale{ProjectID: projectID, Locale: locale}
	if err := a.repo.AddLocale(ctx, pl); err != nil {
		return nil, err
	}
	return pl, nil
}

func (a *ProjectAPI) RemoveLocale(projectID int64, locale string) (bool, error) {
	return true, a.repo.RemoveLocale(context.Background(), projectID, locale)
}

func (a *ProjectAPI) ListLocales(projectID int64) ([]*domain.ProjectLocale, error) {
	return a.repo.ListLocales(context.Background(), projectID)
}
