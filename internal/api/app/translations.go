package app

import (
	"context"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type TranslationsAPI struct {
	repo ports.TranslationRepository
}

func NewTranslationsAPI(repo ports.TranslationRepository) *TranslationsAPI {
	return &TranslationsAPI{repo: repo}
}

type UpsertTranslationRequest struct {
	KeyID      int64  `json:"key_id"`
	Locale     string `json:"locale"`
	Text       string `json:"text"`
	Status     string `json:"status"`
	ProviderID *int64 `json:"provider_id"`
}

func (a *TranslationsAPI) Upsert(req UpsertTranslationRequest) (bool, error) {
	ctx := context.Background()
	status := req.Status
	if status == "" {
		status = domain.StatusManual
	}
	t := &domain.Translation{KeyID: req.KeyID, Locale: req.Locale, Text: req.Text, Status: status, ProviderID: req.ProviderID}
	return true, a.repo.Upsert(ctx, t)
}

func (a *TranslationsAPI) Get(keyID int64, locale string) (*domain.Translation, error) {
	return a.repo.Get(context.Background(), keyID, locale)
}
