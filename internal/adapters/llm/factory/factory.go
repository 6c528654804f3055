package factory

import (
	httpprov "github.com/yunweneric/lingo-desk/internal/adapters/llm/httpclient"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

// FromProvider returns an HTTP-backed provider for the given record.
func FromProvider(p *domain.Provider) (ports.Provider, bool) {
	return httpprov.New(p.Type, p.APIKey, p.BaseURL, p.Model), true
}
