package prompt

import (
	"bytes"
	"context"
	"text/template"

	"github.com/yunweneric/lingo-desk/internal/ports"
)

type Renderer struct {
	Templates ports.TemplateRepository
}

func New(templates ports.TemplateRepository) *Renderer { return &Renderer{Templates: templates} }

func (r *Renderer) Render(ctx context.Context, scope string, refID *int64, typ, role string, data ports.PromptData) (string, error) {
	// Load effective template from repository; fall back to builtins.
	t, _ := r.Templates.GetEffective(ctx, scope, refID, typ, role)
	body := builtinTemplate(typ, role)
	if t != nil && t.Body != "" {
		body = t.Body
	}
	tpl, err := template.New("prompt").Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func builtinTemplate(typ, role string) string {
	if typ == "translate_single" && role == "system" {
		return "You are a professional localization translator. Translate from {{.SrcLang}} to {{.TgtLang}}. Preserve placeholders exactly (e.g., {{.Placeholders}}). Do not change whitespace or punctuation. Return only JSON: {\"translation\":\"...\"}."
	}
	if typ == "translate_single" && role == "user" {
		return "project: {{.Project}} file: {{.FilePath}} key: {{.Path}} context: {{.Context}}\nsource: {{.Text}}"
	}
	return ""
}
