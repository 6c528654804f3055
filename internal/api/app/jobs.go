package app

import (
	"context"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
	jobsusecase "github.com/yunweneric/lingo-desk/internal/usecase/jobs"
)

type JobsAPI struct {
	runner *jobsusecase.Runner
	repo   ports.JobRepository
}

func NewJobsAPI(runner *jobsusecase.Runner, repo ports.JobRepository) *JobsAPI {
	return &JobsAPI{runner: runner, repo: repo}
}

func (a *JobsAPI) StartTranslateFile(projectID, providerID int64, p jobsusecase.TranslateFileParams) (int64, error) {
	return a.runner.StartTranslateFile(context.Background(), projectID, providerID, p)
}

func (a *JobsAPI) StartTranslateKeys(projectID, providerID int64, p jobsusecase.TranslateKeysParams) (int64, error) {
	return a.runner.StartTranslateKeys(context.Background(), projectID, providerID, p)
}

func (a *JobsAPI) Cancel(jobID int64) bool {
	return a.runner.Cancel(jobID)
}

func (a *JobsAPI) Get(jobID int64) (*domain.Job, error) {
	return a.repo.Get(context.Background(), jobID)
}

func (a *JobsAPI) List(limit int) ([]*domain.Job, error) {
	return a.repo.List(context.Background(), limit)
}

func (a *JobsAPI) ListItems(jobID int64) ([]*domain.JobItem, error) {
	return a.repo.ListItems(context.Background(), jobID)
}

func (a *JobsAPI) ListLogs(jobID int64, limit int) ([]*domain.JobLog, error) {
	return a.repo.ListLogs(context.Background(), jobID, limit)
}

func (a *JobsAPI) Delete(jobID int64) (bool, error) {
	return true, a.repo.Delete(context.Background(), jobID)
}
