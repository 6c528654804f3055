package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type SettingsAPI struct{ repo ports.SettingsRepository }

func NewSettingsAPI(repo ports.SettingsRepository) *SettingsAPI { return &SettingsAPI{repo: repo} }

// Get returns the stored value, or empty string when the key is unset.
func (a *SettingsAPI) Get(key string) (string, error) {
	v, err := a.repo.Get(context.Background(), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (a *SettingsAPI) Set(key, value string) (bool, error) {
	return true, a.repo.Set(context.Background(), key, value)
}

func (a *SettingsAPI) All() ([]*domain.Setting, error) {
	return a.repo.All(context.Background())
}
