package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc-landing-bot/internal/types"
)

func TestExtractHTML(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><body>hi</body></html>"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare document", doc, doc},
		{"document with chatter", "Sure! Here you go:\n" + doc + "\nHope that helps.", doc},
		{"html without doctype", "<html><body>hi</body></html>", "<html><body>hi</body></html>"},
		{"fenced block", "```html\n<div>hi</div>\n```", "<div>hi</div>"},
		{"plain text passthrough", "no markup here", "no markup here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHTML(tt.in))
		})
	}
}

func TestUsableHTML(t *testing.T) {
	assert.False(t, usableHTML("<html></html>"))
	assert.False(t, usableHTML(strings.Repeat("x", 200)))
	assert.True(t, usableHTML("<html>"+strings.Repeat("x", 200)+"</html>"))
}

func TestRetryDelayGrows(t *testing.T) {
	assert.Equal(t, 2*time.Second, retryDelay(1))
	assert.Equal(t, 3*time.Second, retryDelay(2))
	assert.Greater(t, retryDelay(3), retryDelay(2))
	// Same attempt always yields the same delay.
	assert.Equal(t, retryDelay(3), retryDelay(3))
}

func TestFallbackPage(t *testing.T) {
	page := fallbackPage(types.CreateDetails{
		LandingName: "Acme",
		Description: "A widget store",
		Purpose:     "early signups",
	})

	assert.Contains(t, page, "<title>Acme</title>")
	assert.Contains(t, page, "A widget store")
	assert.Contains(t, page, "early signups")
	assert.NotContains(t, page, "{{")
	assert.True(t, usableHTML(page))
}

func TestSavePage(t *testing.T) {
	g := &Generator{outputDir: t.TempDir()}

	dir, err := g.SavePage("<html><body>hi</body></html>", "My Cool App!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(dir), "my-cool-app-"), dir)
	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html><body>hi</body></html>", string(content))

	// Each save gets a fresh staging directory.
	dir2, err := g.SavePage("<html></html>", "My Cool App!")
	require.NoError(t, err)
	assert.NotEqual(t, dir, dir2)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "my-cool-app", slug("My Cool App!"))
	assert.Equal(t, "acme", slug("Acme"))
	assert.Equal(t, "a-b", slug("  a & b  "))
}
