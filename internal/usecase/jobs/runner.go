// Package jobs runs machine-translation jobs in the background and streams
// progress to the UI through runtime events.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/logger"
	"github.com/yunweneric/lingo-desk/internal/ports"
	"github.com/yunweneric/lingo-desk/internal/usecase/translator"
)

type Deps struct {
	Jobs         ports.JobRepository
	Projects     ports.ProjectRepository
	Keys         ports.KeyRepository
	Providers    ports.ProviderRepository
	Translations ports.TranslationRepository
}

// EventEmitter delivers job events to the frontend.
type EventEmitter interface {
	Emit(name string, payload any)
}

type Runner struct {
	d      Deps
	trans  *translator.Service
	mu     sync.Mutex
	active map[int64]context.CancelFunc
	em     EventEmitter
}

func NewRunner(d Deps, trans *translator.Service) *Runner {
	return &Runner{d: d, trans: trans, active: map[int64]context.CancelFunc{}}
}

func (r *Runner) SetEmitter(em EventEmitter) { r.em = em }

type TranslateFileParams struct {
	FileID        int64    `json:"file_id"`
	TargetLocales []string `json:"target_locales"`
	Model         string   `json:"model"`
}

// TranslateKeysParams describes a batch of specific keys to translate.
type TranslateKeysParams struct {
	KeyIDs  []int64  `json:"key_ids"`
	Locales []string `json:"locales"`
	Model   string   `json:"model"`
}

// StartTranslateFile queues a job that fills every missing translation of
// the file for the given target locales, then runs it in the background.
func (r *Runner) StartTranslateFile(ctx context.Context, projectID, providerID int64, p TranslateFileParams) (int64, error) {
	if p.Model == "" {
		if prov, err := r.d.Providers.Get(ctx, providerID); err == nil && prov != nil {
			p.Model = prov.Model
		}
	}
	paramsJSON, _ := json.Marshal(p)
	job := &domain.Job{Type: "translate_file", Status: "queued", ProjectID: &projectID, ProviderID: &providerID, ParamsRaw: string(paramsJSON)}
	id, err := r.d.Jobs.Create(ctx, job)
	if err != nil {
		return 0, err
	}
	tasks, err := r.missingFileTasks(ctx, p.FileID, p.TargetLocales)
	if err != nil {
		_ = r.d.Jobs.UpdateProgress(ctx, id, 0, 0, "failed")
		r.log(ctx, id, "error", fmt.Sprintf("task build failed: %v", err))
		return 0, err
	}
	return id, r.launch(ctx, id, projectID, providerID, p.Model, tasks)
}

// StartTranslateKeys queues a job for a specific set of keys.
func (r *Runner) StartTranslateKeys(ctx context.Context, projectID, providerID int64, p TranslateKeysParams) (int64, error) {
	if p.Model == "" {
		if prov, err := r.d.Providers.Get(ctx, providerID); err == nil && prov != nil {
			p.Model = prov.Model
		}
	}
	paramsJSON, _ := json.Marshal(p)
	job := &domain.Job{Type: "translate_keys", Status: "queued", ProjectID: &projectID, ProviderID: &providerID, ParamsRaw: string(paramsJSON)}
	id, err := r.d.Jobs.Create(ctx, job)
	if err != nil {
		return 0, err
	}
	var tasks []task
	for _, keyID := range p.KeyIDs {
		k, err := r.d.Keys.Get(ctx, keyID)
		if err != nil {
			continue
		}
		for _, loc := range p.Locales {
			if t, _ := r.d.Translations.Get(ctx, k.ID, loc); t != nil && strings.TrimSpace(t.Text) != "" {
				continue
			}
			tasks = append(tasks, task{key: k, locale: loc})
		}
	}
	return id, r.launch(ctx, id, projectID, providerID, p.Model, tasks)
}

// Cancel stops a running job.
func (r *Runner) Cancel(jobID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cancel, ok := r.active[jobID]
	if ok {
		cancel()
		delete(r.active, jobID)
	}
	return ok
}

type task struct {
	key    *domain.Key
	locale string
}

func (r *Runner) missingFileTasks(ctx context.Context, fileID int64, locales []string) ([]task, error) {
	keys, err := r.d.Keys.ListByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	var tasks []task
	for _, loc := range locales {
		have := map[int64]struct{}{}
		trs, err := r.d.Translations.ListByFileLocale(ctx, fileID, loc)
		if err != nil {
			return nil, err
		}
		for _, t := range trs {
			if strings.TrimSpace(t.Text) != "" {
				have[t.KeyID] = struct{}{}
			}
		}
		for _, k := range keys {
			if _, ok := have[k.ID]; !ok {
				tasks = append(tasks, task{key: k, locale: loc})
			}
		}
	}
	return tasks, nil
}

func (r *Runner) launch(ctx context.Context, jobID, projectID, providerID int64, model string, tasks []task) error {
	total := len(tasks)
	if err := r.d.Jobs.UpdateProgress(ctx, jobID, 0, total, "running"); err != nil {
		return err
	}
	r.emit("job.started", map[string]any{"job_id": jobID, "total": total, "model": model, "provider_id": providerID})
	r.log(ctx, jobID, "info", fmt.Sprintf("job started: provider=%d model=%s tasks=%d", providerID, model, total))
	logger.L().Info("translation job started",
		zap.Int64("job_id", jobID),
		zap.Int64("project_id", projectID),
		zap.Int("tasks", total))

	cctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.active[jobID] = cancel
	r.mu.Unlock()
	go r.run(cctx, jobID, projectID, providerID, model, tasks)
	return nil
}

func (r *Runner) run(ctx context.Context, jobID, projectID, providerID int64, model string, tasks []task) {
	defer func() {
		r.mu.Lock()
		delete(r.active, jobID)
		r.mu.Unlock()
	}()
	// ctx is canceled by Cancel; status and item writes go through a
	// separate context so terminal state still reaches the database.
	pctx := context.Background()
	srcLang := ""
	if r.d.Projects != nil {
		if p, err := r.d.Projects.Get(pctx, projectID); err == nil && p != nil {
			srcLang = p.SourceLang
		}
	}
	done := 0
	total := len(tasks)
	for _, t := range tasks {
		select {
		case <-ctx.Done():
			_ = r.d.Jobs.UpdateProgress(pctx, jobID, done, total, "canceled")
			r.emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "canceled"})
			return
		default:
		}
		item := &domain.JobItem{JobID: jobID, KeyID: &t.key.ID, Locale: &t.locale, Status: "running"}
		itemID, _ := r.d.Jobs.AddItem(pctx, item)
		r.emit("job.item.start", map[string]any{"job_id": jobID, "key_id": t.key.ID, "path": t.key.Path, "locale": t.locale, "model": model})

		ictx, cancel := context.WithTimeout(ctx, 60*time.Second)
		txt, err := r.trans.TranslateOne(ictx, translator.TranslateArgs{
			ProviderID: providerID,
			Key:        t.key,
			SourceLang: srcLang,
			TargetLang: t.locale,
			Model:      model,
		})
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				_ = r.d.Jobs.UpdateItem(pctx, itemID, "canceled", "")
				_ = r.d.Jobs.UpdateProgress(pctx, jobID, done, total, "canceled")
				r.emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "canceled"})
				return
			}
			_ = r.d.Jobs.UpdateItem(pctx, itemID, "failed", err.Error())
			r.log(pctx, jobID, "error", fmt.Sprintf("%s -> %s: %v", t.key.Path, t.locale, err))
			logger.L().Warn("translation failed",
				zap.Int64("job_id", jobID),
				zap.String("path", t.key.Path),
				zap.String("locale", t.locale),
				zap.Error(err))
			r.emit("job.item.done", map[string]any{"job_id": jobID, "key_id": t.key.ID, "path": t.key.Path, "locale": t.locale, "error": err.Error(), "model": model})
		} else {
			_ = r.d.Translations.Upsert(pctx, &domain.Translation{KeyID: t.key.ID, Locale: t.locale, Text: txt, Status: domain.StatusMachine, ProviderID: &providerID})
			_ = r.d.Jobs.UpdateItem(pctx, itemID, "done", "")
			r.emit("job.item.done", map[string]any{"job_id": jobID, "key_id": t.key.ID, "path": t.key.Path, "locale": t.locale, "text": txt, "model": model})
		}
		done++
		_ = r.d.Jobs.UpdateProgress(pctx, jobID, done, total, "running")
		r.emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "running"})
	}
	_ = r.d.Jobs.UpdateProgress(pctx, jobID, done, total, "done")
	r.emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "done"})
	logger.L().Info("translation job finished", zap.Int64("job_id", jobID), zap.Int("done", done))
}

func (r *Runner) emit(name string, payload any) {
	if r.em != nil {
		r.em.Emit(name, payload)
	}
}

func (r *Runner) log(ctx context.Context, jobID int64, level, msg string) {
	_ = r.d.Jobs.AddLog(ctx, &domain.JobLog{JobID: jobID, Level: level, Message: msg})
}
