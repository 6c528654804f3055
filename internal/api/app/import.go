package app

import (
	"context"
	"encoding/base64"

	"github.com/yunweneric/lingo-desk/internal/usecase/importer"
)

type ImportAPI struct {
	svc *importer.Service
}

func NewImportAPI(svc *importer.Service) *ImportAPI { return &ImportAPI{svc: svc} }

type ImportRequest struct {
	ProjectID int64  `json:"project_id"`
	Filename  string `json:"filename"`
	Format    string `json:"format"`
	Locale    string `json:"locale"`
	// Content is base64-encoded file bytes.
	ContentB64 string `json:"content_b64"`
}

type ImportResponse struct {
	FileID  int64 `json:"file_id"`
	Keys    int   `json:"keys"`
	Updated bool  `json:"updated"`
}

func (a *ImportAPI) ImportBase64(req ImportRequest) (ImportResponse, error) {
	ctx := context.Background()
	b, err := base64.StdEncoding.DecodeString(req.ContentB64)
	if err != nil {
		return ImportResponse{}, err
	}
	res, err := a.svc.Import(ctx, importer.ImportArgs{ProjectID: req.ProjectID, Filename: req.Filename, Format: req.Format, Locale: req.Locale, Content: b})
	if err != nil {
		return ImportResponse{}, err
	}
	return ImportResponse{FileID: res.FileID, Keys: res.Keys, Updated: res.Updated}, nil
}
