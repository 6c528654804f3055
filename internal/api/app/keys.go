package app

import (
	"context"
	"errors"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type KeyAPI struct{ repo ports.KeyRepository }

func NewKeyAPI(repo ports.KeyRepository) *KeyAPI { return &KeyAPI{repo: repo} }

func (a *KeyAPI) ListByFile(fileID int64) ([]*domain.Key, error) {
	return a.repo.ListByFile(context.Background(), fileID)
}

type UpsertKeyItem struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	Context  string `json:"context"`
	Metadata string `json:"metadata_json"`
}

// UpsertBatch inserts new keys and updates existing keys' source/context
// by path for the given file.
func (a *KeyAPI) UpsertBatch(fileID int64, items []UpsertKeyItem) (int, error) {
	ctx := context.Background()
	if fileID == 0 {
		return 0, errors.New("file_id required")
	}
	ups := make([]*domain.Key, 0, len(items))
	for _, it := range items {
		ups = append(ups, &domain.Key{FileID: fileID, Path: it.Path, SourceText: it.Source, Context: it.Context, MetadataRaw: it.Metadata})
	}
	if err := a.repo.UpsertBatch(ctx, ups); err != nil {
		return 0, err
	}
	return len(ups), nil
}
