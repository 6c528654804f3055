package app

import (
	"context"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type FileAPI struct{ repo ports.FileRepository }

func NewFileAPI(repo ports.FileRepository) *FileAPI { return &FileAPI{repo: repo} }

func (a *FileAPI) ListByProject(projectID int64) ([]*domain.File, error) {
	return a.repo.ListByProject(context.Background(), projectID)
}

func (a *FileAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	if _, err := a.repo.Get(ctx, id); err != nil {
		return false, err
	}
	if err := a.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
