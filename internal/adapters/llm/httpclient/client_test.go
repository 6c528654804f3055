package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTranslation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "plain json", content: `{"translation":"Bonjour"}`, want: "Bonjour"},
		{name: "fenced json", content: "```json\n{\"translation\":\"Hallo\"}\n```", want: "Hallo"},
		{name: "json in prose", content: `Here you go: {"translation":"Hola"} hope that helps`, want: "Hola"},
		{name: "labelled plain text", content: "Translation: Ciao", want: "Ciao"},
		{name: "bare plain text", content: "Bonjour", want: "Bonjour"},
		{name: "empty object", content: `{"nope":"x"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTranslation(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenRouterURL(t *testing.T) {
	assert.Equal(t, "https://openrouter.ai/api/v1/models", openRouterURL("https://openrouter.ai", "/models"))
	assert.Equal(t, "https://openrouter.ai/api/v1/models", openRouterURL("https://openrouter.ai/api/v1/", "/models"))
}
