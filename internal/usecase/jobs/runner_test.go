package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunweneric/lingo-desk/internal/adapters/db/sqlite"
	promptrender "github.com/yunweneric/lingo-desk/internal/adapters/prompt"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
	"github.com/yunweneric/lingo-desk/internal/usecase/translator"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   bool          // wait for ctx cancelation instead of answering
	started chan struct{} // signaled on first call when set
}

func (f *fakeProvider) Translate(ctx context.Context, seg ports.Segment, p ports.TranslateParams) (ports.TranslateResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.block {
		<-ctx.Done()
		return ports.TranslateResult{}, ctx.Err()
	}
	if f.err != nil {
		return ports.TranslateResult{}, f.err
	}
	return ports.TranslateResult{Translation: fmt.Sprintf("[%s] %s", p.TargetLang, seg.Text)}, nil
}

func (f *fakeProvider) ListModels(context.Context) ([]ports.ModelInfo, error) { return nil, nil }
func (f *fakeProvider) Test(context.Context) error                           { return nil }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fixture struct {
	runner       *Runner
	jobs         *sqlite.JobRepo
	translations *sqlite.TranslationRepo
	project      *domain.Project
	file         *domain.File
	keys         []*domain.Key
	provider     *domain.Provider
	fake         *fakeProvider
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	projects := sqlite.NewProjectRepo(db)
	files := sqlite.NewFileRepo(db)
	keys := sqlite.NewKeyRepo(db)
	translations := sqlite.NewTranslationRepo(db)
	providers := sqlite.NewProviderRepo(db)
	templates := sqlite.NewTemplateRepo(db)
	cache := sqlite.NewCacheRepo(db)
	jobRepo := sqlite.NewJobRepo(db)

	p := &domain.Project{Name: "site", SourceLang: "en"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, projects.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: "fr"}))

	f := &domain.File{ProjectID: p.ID, Path: "en.json", Format: "nestedjson", Locale: "en"}
	require.NoError(t, files.Create(ctx, f))

	ks := []*domain.Key{
		{FileID: f.ID, Path: "home.title", SourceText: "Welcome"},
		{FileID: f.ID, Path: "home.bye", SourceText: "Goodbye"},
	}
	require.NoError(t, keys.UpsertBatch(ctx, ks))
	list, err := keys.ListByFile(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	prov := &domain.Provider{Type: "ollama", Name: "local", BaseURL: "http://localhost:11434", Model: "llama3"}
	require.NoError(t, providers.Create(ctx, prov))

	fake := &fakeProvider{}
	trans := translator.New(translator.Deps{
		Providers:    providers,
		Templates:    templates,
		Cache:        cache,
		Translations: translations,
		Prompt:       promptrender.New(templates),
		BuildProvider: func(*domain.Provider) (ports.Provider, error) {
			return fake, nil
		},
	})

	runner := NewRunner(Deps{
		Jobs:         jobRepo,
		Projects:     projects,
		Keys:         keys,
		Providers:    providers,
		Translations: translations,
	}, trans)

	return &fixture{
		runner:       runner,
		jobs:         jobRepo,
		translations: translations,
		project:      p,
		file:         f,
		keys:         list,
		provider:     prov,
		fake:         fake,
	}
}

func waitJob(t *testing.T, fx *fixture, jobID int64, status string) *domain.Job {
	t.Helper()
	var job *domain.Job
	require.Eventually(t, func() bool {
		j, err := fx.jobs.Get(context.Background(), jobID)
		if err != nil || j == nil {
			return false
		}
		job = j
		return j.Status == status
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestStartTranslateFile_FillsMissing(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	// One key already translated; only the other should be sent out.
	require.NoError(t, fx.translations.Upsert(ctx, &domain.Translation{
		KeyID: fx.keys[0].ID, Locale: "fr", Text: "Au revoir", Status: domain.StatusManual,
	}))

	id, err := fx.runner.StartTranslateFile(ctx, fx.project.ID, fx.provider.ID, TranslateFileParams{
		FileID:        fx.file.ID,
		TargetLocales: []string{"fr"},
	})
	require.NoError(t, err)

	job := waitJob(t, fx, id, "done")
	assert.Equal(t, 1, job.Total)
	assert.Equal(t, 1, job.Progress)
	assert.Equal(t, 1, fx.fake.callCount())

	tr, err := fx.translations.Get(ctx, fx.keys[1].ID, "fr")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, "[fr] Welcome", tr.Text)
	assert.Equal(t, domain.StatusMachine, tr.Status)
	require.NotNil(t, tr.ProviderID)
	assert.Equal(t, fx.provider.ID, *tr.ProviderID)

	// The manual translation is untouched.
	existing, err := fx.translations.Get(ctx, fx.keys[0].ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Au revoir", existing.Text)
	assert.Equal(t, domain.StatusManual, existing.Status)
}

func TestStartTranslateFile_FallsBackToProviderModel(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	id, err := fx.runner.StartTranslateFile(ctx, fx.project.ID, fx.provider.ID, TranslateFileParams{
		FileID:        fx.file.ID,
		TargetLocales: []string{"fr"},
	})
	require.NoError(t, err)

	job := waitJob(t, fx, id, "done")
	assert.Contains(t, job.ParamsRaw, `"model":"llama3"`)
}

func TestStartTranslateKeys_SkipsAlreadyFilled(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	require.NoError(t, fx.translations.Upsert(ctx, &domain.Translation{
		KeyID: fx.keys[0].ID, Locale: "fr", Text: "Au revoir", Status: domain.StatusReviewed,
	}))

	id, err := fx.runner.StartTranslateKeys(ctx, fx.project.ID, fx.provider.ID, TranslateKeysParams{
		KeyIDs:  []int64{fx.keys[0].ID, fx.keys[1].ID},
		Locales: []string{"fr"},
	})
	require.NoError(t, err)

	job := waitJob(t, fx, id, "done")
	assert.Equal(t, 1, job.Total)

	items, err := fx.jobs.ListItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "done", items[0].Status)
	require.NotNil(t, items[0].KeyID)
	assert.Equal(t, fx.keys[1].ID, *items[0].KeyID)
}

func TestCancel_PersistsCanceledStatus(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	fx.fake.block = true
	fx.fake.started = make(chan struct{}, 1)

	id, err := fx.runner.StartTranslateFile(ctx, fx.project.ID, fx.provider.ID, TranslateFileParams{
		FileID:        fx.file.ID,
		TargetLocales: []string{"fr"},
	})
	require.NoError(t, err)

	select {
	case <-fx.fake.started:
	case <-time.After(5 * time.Second):
		t.Fatal("provider was never called")
	}
	require.True(t, fx.runner.Cancel(id))

	job := waitJob(t, fx, id, "canceled")
	assert.Equal(t, 0, job.Progress)
	assert.Equal(t, 2, job.Total)

	items, err := fx.jobs.ListItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "canceled", items[0].Status)

	// The interrupted item wrote nothing.
	tr, err := fx.translations.Get(ctx, fx.keys[0].ID, "fr")
	require.NoError(t, err)
	assert.Nil(t, tr)

	// A second cancel is a no-op.
	assert.False(t, fx.runner.Cancel(id))
}

type failingKeyRepo struct{ ports.KeyRepository }

func (failingKeyRepo) ListByFile(context.Context, int64) ([]*domain.Key, error) {
	return nil, errors.New("disk I/O error")
}

func TestStartTranslateFile_TaskBuildFailureMarksJobFailed(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	fx.runner.d.Keys = failingKeyRepo{fx.runner.d.Keys}

	_, err := fx.runner.StartTranslateFile(ctx, fx.project.ID, fx.provider.ID, TranslateFileParams{
		FileID:        fx.file.ID,
		TargetLocales: []string{"fr"},
	})
	require.Error(t, err)

	list, err := fx.jobs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "failed", list[0].Status)
}

func TestRun_ProviderFailureMarksItemFailed(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	fx.fake.err = errors.New("connection refused")

	id, err := fx.runner.StartTranslateKeys(ctx, fx.project.ID, fx.provider.ID, TranslateKeysParams{
		KeyIDs:  []int64{fx.keys[0].ID},
		Locales: []string{"fr"},
	})
	require.NoError(t, err)

	job := waitJob(t, fx, id, "done")
	assert.Equal(t, 1, job.Progress)

	items, err := fx.jobs.ListItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "failed", items[0].Status)
	assert.Contains(t, items[0].Error, "connection refused")

	logs, err := fx.jobs.ListLogs(ctx, id, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, logs)

	tr, err := fx.translations.Get(ctx, fx.keys[0].ID, "fr")
	require.NoError(t, err)
	assert.Nil(t, tr)
}
