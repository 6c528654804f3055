package app

import (
	"context"

	"github.com/yunweneric/lingo-desk/internal/usecase/progress"
)

// ProgressAPI backs the dashboard and the editor's missing filter.
type ProgressAPI struct{ svc *progress.Service }

func NewProgressAPI(svc *progress.Service) *ProgressAPI { return &ProgressAPI{svc: svc} }

func (a *ProgressAPI) ProjectProgress(projectID int64) ([]progress.LocaleProgress, error) {
	return a.svc.ProjectProgress(context.Background(), projectID)
}

func (a *ProgressAPI) FileProgress(projectID int64, locale string) ([]progress.FileLocaleProgress, error) {
	return a.svc.FileProgress(context.Background(), projectID, locale)
}

func (a *ProgressAPI) Rows(fileID int64, locale string, missingOnly bool) ([]progress.Row, error) {
	return a.svc.Rows(context.Background(), fileID, locale, missingOnly)
}
