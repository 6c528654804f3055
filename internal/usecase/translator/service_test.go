package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlaceholders(t *testing.T) {
	assert.Nil(t, extractPlaceholders("no placeholders here"))
	assert.Equal(t, []string{"{name}"}, extractPlaceholders("Hello {name}, welcome {name}!"))
	assert.Equal(t, []string{"{count}", "{name}"}, extractPlaceholders("{name} has {count} items"))
}

func TestMaskPlaceholders_RoundTrip(t *testing.T) {
	src := "Hello {name}, you have {count} new messages"
	phs := extractPlaceholders(src)
	masked, unmask := maskPlaceholders(src, phs)

	assert.NotContains(t, masked, "{name}")
	assert.NotContains(t, masked, "{count}")
	assert.Contains(t, masked, "__PH_0__")

	// A "translation" that keeps the tokens gets its placeholders back.
	translated := unmask(masked)
	assert.Equal(t, src, translated)
}

func TestIsRetryableTranslateError(t *testing.T) {
	assert.False(t, isRetryableTranslateError(nil))
	assert.True(t, isRetryableTranslateError(errString("failed to parse translation json; content: x")))
	assert.True(t, isRetryableTranslateError(errString("no choices returned")))
	assert.False(t, isRetryableTranslateError(errString("connection refused")))
}

type errString string

func (e errString) Error() string { return string(e) }
