package app

import (
	"context"
	"encoding/base64"

	"github.com/yunweneric/lingo-desk/internal/usecase/exporter"
)

type ExportAPI struct{ svc *exporter.Service }

func NewExportAPI(s *exporter.Service) *ExportAPI { return &ExportAPI{svc: s} }

type ExportFileRequest struct {
	FileID         int64  `json:"file_id"`
	Locale         string `json:"locale"`
	Fallback       bool   `json:"fallback"`
	OverrideFormat string `json:"override_format"`
}

type ExportFileResponse struct {
	Filename   string `json:"filename"`
	ContentB64 string `json:"content_b64"`
}

func (a *ExportAPI) ExportFileBase64(req ExportFileRequest) (ExportFileResponse, error) {
	ctx := context.Background()
	res, err := a.svc.ExportFile(ctx, exporter.ExportArgs{FileID: req.FileID, Locale: req.Locale, Fallback: req.Fallback, OverrideFormat: req.OverrideFormat})
	if err != nil {
		return ExportFileResponse{}, err
	}
	return ExportFileResponse{Filename: res.Filename, ContentB64: base64.StdEncoding.EncodeToString(res.Content)}, nil
}
