// Package translator runs single-key machine translation through a
// configured provider, with placeholder protection and a result cache.
package translator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Deps struct {
	Providers    ports.ProviderRepository
	Templates    ports.TemplateRepository
	Cache        ports.CacheRepository
	Translations ports.TranslationRepository
	Prompt       ports.PromptRenderer
	// BuildProvider returns a concrete ports.Provider for a provider record.
	BuildProvider func(*domain.Provider) (ports.Provider, error)
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type TranslateArgs struct {
	ProviderID     int64
	Key            *domain.Key
	SourceLang     string
	TargetLang     string
	Model          string
	SystemOverride string
	UserOverride   string
	BypassCache    bool
}

func (s *Service) TranslateOne(ctx context.Context, a TranslateArgs) (string, error) {
	if a.Key == nil {
		return "", errors.New("key is required")
	}
	prov, err := s.d.Providers.Get(ctx, a.ProviderID)
	if err != nil {
		return "", err
	}
	placeholders := extractPlaceholders(a.Key.SourceText)
	masked, unmask := maskPlaceholders(a.Key.SourceText, placeholders)

	data := ports.PromptData{
		SrcLang:      a.SourceLang,
		TgtLang:      a.TargetLang,
		Path:         a.Key.Path,
		Text:         masked,
		Context:      a.Key.Context,
		Placeholders: placeholders,
	}

	system := a.SystemOverride
	user := a.UserOverride
	if system == "" {
		system, err = s.d.Prompt.Render(ctx, "provider", &prov.ID, "translate_single", "system", data)
		if err != nil {
			return "", err
		}
	}
	if user == "" {
		user, err = s.d.Prompt.Render(ctx, "provider", &prov.ID, "translate_single", "user", data)
		if err != nil {
			return "", err
		}
	}
	segment := ports.Segment{Path: a.Key.Path, Text: masked, Context: a.Key.Context, Placeholders: placeholders}

	// Cache lookup on the masked variant so placeholders stay protected.
	if !a.BypassCache {
		if ce, _ := s.d.Cache.Get(ctx, masked, a.SourceLang, a.TargetLang, prov.Type, a.Model); ce != nil {
			return unmask(ce.Translation), nil
		}
	}

	if s.d.BuildProvider == nil {
		return "", fmt.Errorf("TranslateOne: provider builder missing")
	}
	adapter, err := s.d.BuildProvider(prov)
	if err != nil {
		return "", err
	}
	var res ports.TranslateResult
	var trErr error
	for attempt := 1; attempt <= 3; attempt++ {
		res, trErr = adapter.Translate(ctx, segment, ports.TranslateParams{
			SourceLang:   a.SourceLang,
			TargetLang:   a.TargetLang,
			Model:        a.Model,
			Temperature:  0.0,
			SystemPrompt: system,
			UserPrompt:   user,
		})
		if trErr == nil {
			break
		}
		// Retry only on parse/formatting errors that models flake on.
		if !isRetryableTranslateError(trErr) || attempt == 3 {
			return "", trErr
		}
		time.Sleep(time.Duration(200*attempt) * time.Millisecond)
	}
	translated := unmask(strings.TrimSpace(res.Translation))
	for _, ph := range placeholders {
		if !strings.Contains(translated, ph) {
			return "", fmt.Errorf("placeholder missing in translation: %s", ph)
		}
	}
	_ = s.d.Cache.Put(ctx, &domain.CacheEntry{
		SourceText:  masked,
		SrcLang:     a.SourceLang,
		TgtLang:     a.TargetLang,
		Provider:    prov.Type,
		Model:       a.Model,
		Translation: translated,
	})
	return translated, nil
}

var placeholderRE = regexp.MustCompile(`\{[^}]+\}`)

func extractPlaceholders(s string) []string {
	m := placeholderRE.FindAllString(s, -1)
	if len(m) == 0 {
		return nil
	}
	uniq := make(map[string]struct{}, len(m))
	for _, v := range m {
		uniq[v] = struct{}{}
	}
	out := make([]string, 0, len(uniq))
	for v := range uniq {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// maskPlaceholders swaps {placeholders} for opaque tokens before the text is
// sent to a model, returning a function that restores them afterwards.
func maskPlaceholders(s string, placeholders []string) (string, func(string) string) {
	masked := s
	type repl struct{ from, to string }
	repls := make([]repl, 0, len(placeholders))
	for i, ph := range placeholders {
		token := fmt.Sprintf("__PH_%d__", i)
		masked = strings.ReplaceAll(masked, ph, token)
		repls = append(repls, repl{from: token, to: ph})
	}
	unmask := func(in string) string {
		out := in
		for i := len(repls) - 1; i >= 0; i-- {
			out = strings.ReplaceAll(out, repls[i].from, repls[i].to)
		}
		return out
	}
	return masked, unmask
}

// isRetryableTranslateError reports transient output/format issues that are
// likely to succeed on retry.
func isRetryableTranslateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "failed to parse translation json"):
		return true
	case strings.Contains(msg, "no choices returned"):
		return true
	case strings.Contains(msg, "unexpected end of"):
		return true
	case strings.Contains(msg, "invalid character"):
		return true
	default:
		return false
	}
}
