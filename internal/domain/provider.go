package domain

import "time"

// Provider is a machine-translation backend configuration.
type Provider struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"` // ollama, openrouter
	Name       string    `json:"name"`
	BaseURL    string    `json:"base_url"`
	Model      string    `json:"model"`
	APIKey     string    `json:"api_key"`
	OptionsRaw string    `json:"options_json"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProviderModel struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Template struct {
	ID        int64     `json:"id"`
	Scope     string    `json:"scope"`  // global | project | provider
	RefID     *int64    `json:"ref_id"` // project_id or provider_id
	Type      string    `json:"type"`   // translate_single
	Role      string    `json:"role"`   // system | user
	Body      string    `json:"body"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CacheEntry struct {
	ID          int64     `json:"id"`
	SourceText  string    `json:"source_text"`
	SrcLang     string    `json:"src_lang"`
	TgtLang     string    `json:"tgt_lang"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}
