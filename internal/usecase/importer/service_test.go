package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	csvparser "github.com/yunweneric/lingo-desk/internal/adapters/parser/csv"
	"github.com/yunweneric/lingo-desk/internal/adapters/parser/nestedjson"
	parreg "github.com/yunweneric/lingo-desk/internal/adapters/parser/registry"
	"github.com/yunweneric/lingo-desk/internal/adapters/db/sqlite"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

func setup(t *testing.T) (*Service, *domain.Project, *sqlite.KeyRepo) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	projects := sqlite.NewProjectRepo(db)
	files := sqlite.NewFileRepo(db)
	keys := sqlite.NewKeyRepo(db)

	p := &domain.Project{Name: "site", SourceLang: "en"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, projects.AddLocale(ctx, &domain.ProjectLocale{ProjectID: p.ID, Locale: "fr"}))

	reg := parreg.New()
	reg.Register(nestedjson.New())
	reg.Register(csvparser.New())

	return New(projects, files, keys, reg, sqlite.HashBytes), p, keys
}

func TestImport_NestedJSON(t *testing.T) {
	ctx := context.Background()
	svc, p, keys := setup(t)

	res, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID,
		Filename:  "en.json",
		Format:    "nestedjson",
		Locale:    "en",
		Content:   []byte(`{"home":{"title":"Welcome"},"bye":"Goodbye"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Keys)
	assert.False(t, res.Updated)

	list, err := keys.ListByFile(ctx, res.FileID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bye", list[0].Path)
	assert.Equal(t, "home.title", list[1].Path)
}

func TestImport_ReimportUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	svc, p, keys := setup(t)

	first, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "en.json", Format: "nestedjson", Locale: "en",
		Content: []byte(`{"greeting":"Hi"}`),
	})
	require.NoError(t, err)

	second, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "en.json", Format: "nestedjson", Locale: "en",
		Content: []byte(`{"greeting":"Hello","farewell":"Bye"}`),
	})
	require.NoError(t, err)
	assert.True(t, second.Updated)
	assert.Equal(t, first.FileID, second.FileID)

	list, err := keys.ListByFile(ctx, first.FileID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Hello", list[1].SourceText)
}

func TestImport_ReimportRefreshesFileAndPrunesKeys(t *testing.T) {
	ctx := context.Background()
	svc, p, keys := setup(t)

	_, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "en.json", Format: "nestedjson", Locale: "en",
		Content: []byte(`{"greeting":"Hi","farewell":"Bye"}`),
	})
	require.NoError(t, err)
	before, err := svc.Files.GetByPath(ctx, p.ID, "en.json")
	require.NoError(t, err)

	second := []byte(`{"greeting":"Hello"}`)
	res, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "en.json", Format: "nestedjson", Locale: "en",
		Content: second,
	})
	require.NoError(t, err)
	require.True(t, res.Updated)

	// The file row tracks the new content.
	after, err := svc.Files.GetByPath(ctx, p.ID, "en.json")
	require.NoError(t, err)
	assert.NotEqual(t, before.Hash, after.Hash)
	assert.Equal(t, sqlite.HashBytes(second), after.Hash)

	// Keys dropped from the content are gone.
	list, err := keys.ListByFile(ctx, res.FileID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "greeting", list[0].Path)
	assert.Equal(t, "Hello", list[0].SourceText)
}

func TestImport_LocaleValidation(t *testing.T) {
	ctx := context.Background()
	svc, p, _ := setup(t)

	// Not a language tag at all.
	_, err := svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "x.json", Format: "nestedjson", Locale: "!!",
		Content: []byte(`{"a":"x"}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language code")

	// Well-formed but not a project locale.
	_, err = svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "x.json", Format: "nestedjson", Locale: "ja",
		Content: []byte(`{"a":"x"}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match expected language code")

	// Target locale is accepted.
	_, err = svc.Import(ctx, ImportArgs{
		ProjectID: p.ID, Filename: "fr.json", Format: "nestedjson", Locale: "fr",
		Content: []byte(`{"a":"x"}`),
	})
	require.NoError(t, err)
}

func TestImport_UnsupportedFormat(t *testing.T) {
	ctx := context.Background()
	svc, p, _ := setup(t)

	_, err := svc.Import(ctx, ImportArgs{ProjectID: p.ID, Filename: "x.po", Format: "gettext", Locale: "en", Content: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
