package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunweneric/lingo-desk/internal/adapters/db/sqlite"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

type fixture struct {
	svc      *Service
	projects *sqlite.ProjectRepo
	keys     *sqlite.KeyRepo
	trans    *sqlite.TranslationRepo
	project  *domain.Project
	file     *domain.File
	keyRows  []*domain.Key
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
	trans := sqlite.NewTranslationRepo(db)

	p := &domain.Project{Name: "site", SourceLang: "en"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, projects.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: "fr"}))
	require.NoError(t, projects.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: "de"}))

	f := &domain.File{ProjectID: p.ID, Path: "en.json", Format: "nestedjson", Locale: "en", Hash: "x"}
	require.NoError(t, files.Create(ctx, f))
	require.NoError(t, keys.UpsertBatch(ctx, []*domain.Key{
		{FileID: f.ID, Path: "a", SourceText: "A"},
		{FileID: f.ID, Path: "b", SourceText: "B"},
		{FileID: f.ID, Path: "c", SourceText: "C"},
		{FileID: f.ID, Path: "d", SourceText: "D"},
	}))
	rows, err := keys.ListByFile(ctx, f.ID)
	require.NoError(t, err)

	return &fixture{
		svc:      New(projects, files, keys, trans),
		projects: projects,
		keys:     keys,
		trans:    trans,
		project:  p,
		file:     f,
		keyRows:  rows,
	}
}

func TestProjectProgress(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	// 3 of 4 keys translated to fr, none to de.
	for _, k := range fx.keyRows[:3] {
		require.NoError(t, fx.trans.Upsert(ctx, &domain.Translation{KeyID: k.ID, Locale: "fr", Text: "x", Status: domain.StatusManual}))
	}

	prog, err := fx.svc.ProjectProgress(ctx, fx.project.ID)
	require.NoError(t, err)
	require.Len(t, prog, 2)

	byLocale := map[string]LocaleProgress{}
	for _, lp := range prog {
		byLocale[lp.Locale] = lp
	}
	assert.Equal(t, 4, byLocale["fr"].Total)
	assert.Equal(t, 3, byLocale["fr"].Filled)
	assert.InDelta(t, 75.0, byLocale["fr"].Percent, 0.001)
	assert.Equal(t, 0, byLocale["de"].Filled)
	assert.InDelta(t, 0.0, byLocale["de"].Percent, 0.001)
}

func TestProjectProgress_EmptyProject(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	projects := sqlite.NewProjectRepo(db)
	p := &domain.Project{Name: "empty", SourceLang: "en"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, projects.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: "fr"}))

	svc := New(projects, sqlite.NewFileRepo(db), sqlite.NewKeyRepo(db), sqlite.NewTranslationRepo(db))
	prog, err := svc.ProjectProgress(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, prog, 1)
	assert.Equal(t, 0, prog[0].Total)
	assert.InDelta(t, 100.0, prog[0].Percent, 0.001) // no keys means nothing missing
}

func TestRows_MissingOnly(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	require.NoError(t, fx.trans.Upsert(ctx, &domain.Translation{KeyID: fx.keyRows[0].ID, Locale: "fr", Text: "Ah", Status: domain.StatusManual}))
	// Whitespace-only text still counts as missing.
	require.NoError(t, fx.trans.Upsert(ctx, &domain.Translation{KeyID: fx.keyRows[1].ID, Locale: "fr", Text: "  ", Status: domain.StatusManual}))

	all, err := fx.svc.Rows(ctx, fx.file.ID, "fr", false)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	missing, err := fx.svc.Rows(ctx, fx.file.ID, "fr", true)
	require.NoError(t, err)
	require.Len(t, missing, 3)
	for _, r := range missing {
		assert.NotEqual(t, "a", r.Path)
	}
}

func TestFileProgress(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	require.NoError(t, fx.trans.Upsert(ctx, &domain.Translation{KeyID: fx.keyRows[0].ID, Locale: "fr", Text: "Ah", Status: domain.StatusMachine}))

	prog, err := fx.svc.FileProgress(ctx, fx.project.ID, "fr")
	require.NoError(t, err)
	require.Len(t, prog, 1)
	assert.Equal(t, fx.file.ID, prog[0].FileID)
	assert.Equal(t, 4, prog[0].Total)
	assert.Equal(t, 1, prog[0].Filled)
	assert.InDelta(t, 25.0, prog[0].Percent, 0.001)
}
