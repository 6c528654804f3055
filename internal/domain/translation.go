package domain

import "time"

// Translation statuses.
const (
	StatusManual   = "manual"
	StatusMachine  = "machine"
	StatusReviewed = "reviewed"
)

type Translation struct {
	ID         int64     `json:"id"`
	KeyID      int64     `json:"key_id"`
	Locale     string    `json:"locale"`
	Text       string    `json:"text"`
	Status     string    `json:"status"`
	ProviderID *int64    `json:"provider_id"`
	Confidence *float64  `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
