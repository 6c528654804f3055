package domain

import "time"

// File is one imported localization file. Format is the registry name
// the file was parsed with (nestedjson, flatjson, csv).
type File struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	Locale    string    `json:"locale"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// Key is a single translation key inside a file. Path is the dot-joined
// key path produced by flattening (e.g. "home.header.title").
type Key struct {
	ID          int64     `json:"id"`
	FileID      int64     `json:"file_id"`
	Path        string    `json:"path"`
	SourceText  string    `json:"source_text"`
	Context     string    `json:"context"`
	MetadataRaw string    `json:"metadata_json"`
	CreatedAt   time.Time `json:"created_at"`
}
