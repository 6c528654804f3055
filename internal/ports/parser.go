package ports

import (
	"github.com/yunweneric/lingo-desk/internal/domain"
)

type ParseResult struct {
	Keys   []*domain.Key
	Locale string // optional, if detected from file content
}

type Parser interface {
	Format() string
	Parse(data []byte) (ParseResult, error)
}
