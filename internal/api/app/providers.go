package app

import (
	"context"
	"errors"
	"strings"

	"github.com/yunweneric/lingo-desk/internal/adapters/llm/factory"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type ProviderAPI struct {
	repo ports.ProviderRepository
}

func NewProviderAPI(repo ports.ProviderRepository) *ProviderAPI { return &ProviderAPI{repo: repo} }

func (a *ProviderAPI) Create(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.Type == "" || p.Name == "" {
		return nil, errors.New("type and name are required")
	}
	if err := a.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) Update(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.ID == 0 {
		return nil, errors.New("id is required")
	}
	// Preserve the stored API key when the UI sends it back masked or empty.
	if strings.HasPrefix(p.APIKey, "****") || p.APIKey == "" {
		existing, err := a.repo.Get(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.APIKey = existing.APIKey
	}
	if err := a.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) List() ([]*domain.Provider, error) {
	list, err := a.repo.List(context.Background())
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.APIKey = mask(p.APIKey)
	}
	return list, nil
}

func (a *ProviderAPI) Delete(id int64) (bool, error) {
	return true, a.repo.Delete(context.Background(), id)
}

func (a *ProviderAPI) ListModels(id int64) ([]ports.ModelInfo, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prov, ok := factory.FromProvider(p)
	if !ok {
		return nil, errors.New("unsupported provider type")
	}
	models, err := prov.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	_ = a.repo.SaveModelCache(ctx, id, names)
	return models, nil
}

func (a *ProviderAPI) ListCachedModels(id int64) ([]*domain.ProviderModel, error) {
	return a.repo.ListModelCache(context.Background(), id)
}

func (a *ProviderAPI) Test(id int64) (bool, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	prov, ok := factory.FromProvider(p)
	if !ok {
		return false, errors.New("unsupported provider type")
	}
	if err := prov.Test(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
