package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProjectRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(openTestDB(t))

	p := &domain.Project{Name: "website", SourceLang: "en"}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "website", got.Name)
	assert.Equal(t, "en", got.SourceLang)

	p.Name = "website-v2"
	require.NoError(t, repo.Update(ctx, p))
	got, err = repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "website-v2", got.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestProjectRepo_Locales(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(openTestDB(t))

	p := &domain.Project{Name: "app", SourceLang: "en"}
	require.NoError(t, repo.Create(ctx, p))

	for _, loc := range []string{"fr", "de"} {
		require.NoError(t, repo.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: loc}))
	}
	locales, err := repo.ListLocales(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, locales, 2)
	assert.Equal(t, "de", locales[0].Locale) // sorted

	require.NoError(t, repo.RemoveLocale(ctx, p.ID, "de"))
	locales, err = repo.ListLocales(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, locales, 1)
	assert.Equal(t, "fr", locales[0].Locale)
}

func seedFile(t *testing.T, db *sql.DB) (*domain.Project, *domain.File) {
	t.Helper()
	ctx := context.Background()
	projects := NewProjectRepo(db)
	files := NewFileRepo(db)
	p := &domain.Project{Name: "app", SourceLang: "en"}
	require.NoError(t, projects.Create(ctx, p))
	f := &domain.File{ProjectID: p.ID, Path: "en.json", Format: "nestedjson", Locale: "en", Hash: HashBytes([]byte("{}"))}
	require.NoError(t, files.Create(ctx, f))
	return p, f
}

func TestKeyRepo_UpsertBatch(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	p, f := seedFile(t, db)
	keys := NewKeyRepo(db)

	batch := []*domain.Key{
		{FileID: f.ID, Path: "home.title", SourceText: "Welcome"},
		{FileID: f.ID, Path: "home.subtitle", SourceText: "Hello"},
	}
	require.NoError(t, keys.UpsertBatch(ctx, batch))

	list, err := keys.ListByFile(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "home.subtitle", list[0].Path) // ordered by path

	// Re-upsert updates source text in place.
	require.NoError(t, keys.UpsertBatch(ctx, []*domain.Key{
		{FileID: f.ID, Path: "home.title", SourceText: "Welcome back"},
	}))
	list, err = keys.ListByFile(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Welcome back", list[1].SourceText)

	n, err := keys.CountByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTranslationRepo_UpsertAndCount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	p, f := seedFile(t, db)
	keys := NewKeyRepo(db)
	trans := NewTranslationRepo(db)

	require.NoError(t, keys.UpsertBatch(ctx, []*domain.Key{
		{FileID: f.ID, Path: "a", SourceText: "A"},
		{FileID: f.ID, Path: "b", SourceText: "B"},
	}))
	list, err := keys.ListByFile(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, trans.Upsert(ctx, &domain.Translation{KeyID: list[0].ID, Locale: "fr", Text: "Ah", Status: domain.StatusManual}))
	require.NoError(t, trans.Upsert(ctx, &domain.Translation{KeyID: list[1].ID, Locale: "fr", Text: "", Status: domain.StatusManual}))

	got, err := trans.Get(ctx, list[0].ID, "fr")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ah", got.Text)

	missing, err := trans.Get(ctx, list[0].ID, "de")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Empty text does not count as filled.
	filled, err := trans.CountFilledByProject(ctx, p.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	// Upsert overwrites.
	require.NoError(t, trans.Upsert(ctx, &domain.Translation{KeyID: list[1].ID, Locale: "fr", Text: "Bh", Status: domain.StatusReviewed}))
	filled, err = trans.CountFilledByProject(ctx, p.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, 2, filled)

	byFile, err := trans.ListByFileLocale(ctx, f.ID, "fr")
	require.NoError(t, err)
	require.Len(t, byFile, 2)
	assert.Equal(t, domain.StatusReviewed, byFile[1].Status)
}

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepo(openTestDB(t))

	require.NoError(t, repo.Set(ctx, "export.format", "nestedjson"))
	require.NoError(t, repo.Set(ctx, "export.format", "csv")) // overwrite

	v, err := repo.Get(ctx, "export.format")
	require.NoError(t, err)
	assert.Equal(t, "csv", v)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
