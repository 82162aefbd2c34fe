// Package generator produces landing page HTML via Gemini and stages
// it on disk for deployment. Generation degrades to a canned template
// when the model is unreachable or returns unusable output; it never
// hard-fails.
package generator

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"fc-landing-bot/internal/types"
)

const pagePrompt = `Create a complete landing page for %s, which is %s. The purpose is %s.

Please generate a SINGLE HTML FILE with embedded CSS (in style tags) and JavaScript (in script tags).
The landing page should include:
1. A clean, modern design with responsive layout
2. A hero section with a compelling headline and call-to-action
3. A features section highlighting key benefits
4. A sign-up form for collecting email addresses

IMPORTANT: Return ONLY the complete HTML file with embedded CSS and JavaScript. Do not use markdown code blocks.`

// Generator wraps the Gemini client with the bot's retry and staging
// policy.
type Generator struct {
	client    *genai.Client
	model     string
	timeout   time.Duration
	retries   int
	outputDir string
	log       *zap.Logger
}

// Options configures a Generator.
type Options struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	Retries   int
	OutputDir string
}

// New builds a Generator backed by the Gemini API.
func New(ctx context.Context, opts Options, log *zap.Logger) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Generator{
		client:    client,
		model:     opts.Model,
		timeout:   opts.Timeout,
		retries:   opts.Retries,
		outputDir: opts.OutputDir,
		log:       log,
	}, nil
}

// GeneratePage returns landing page HTML for the given details. Every
// attempt is bounded by the configured timeout; transient failures are
// retried with exponential backoff, and an exhausted budget or
// unusable model output falls back to the built-in template.
func (g *Generator) GeneratePage(ctx context.Context, d types.CreateDetails) string {
	prompt := fmt.Sprintf(pagePrompt, d.LandingName, d.Description, d.Purpose)

	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			g.log.Info("retrying generation",
				zap.Int("attempt", attempt),
				zap.String("landing_name", d.LandingName))
			select {
			case <-time.After(retryDelay(attempt)):
			case <-ctx.Done():
				return fallbackPage(d)
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		result, err := g.client.Models.GenerateContent(attemptCtx, g.model, genai.Text(prompt), nil)
		cancel()
		if err != nil {
			g.log.Warn("generation attempt failed", zap.Error(err))
			continue
		}

		text := responseText(result)
		if html := ExtractHTML(text); usableHTML(html) {
			return html
		}
		g.log.Warn("generation returned unusable output", zap.Int("length", len(text)))
	}

	g.log.Info("using fallback template", zap.String("landing_name", d.LandingName))
	return fallbackPage(d)
}

// SavePage writes the HTML into a fresh staging directory and returns
// its path.
func (g *Generator) SavePage(html, landingName string) (string, error) {
	dir := filepath.Join(g.outputDir, fmt.Sprintf("%s-%s", slug(landingName), shortID()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write index.html: %w", err)
	}
	return dir, nil
}

// retryDelay computes the backoff for a given attempt number. Pure
// function of the attempt: 2s * 1.5^(attempt-1).
func retryDelay(attempt int) time.Duration {
	base := 2 * time.Second
	return time.Duration(float64(base) * math.Pow(1.5, float64(attempt-1)))
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}
	cand := result.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

var (
	doctypeRe = regexp.MustCompile(`(?s)<!DOCTYPE html>.*</html>`)
	htmlRe    = regexp.MustCompile(`(?s)<html.*</html>`)
	fencedRe  = regexp.MustCompile("(?s)```html\\s*(.*?)\\s*```")
)

// ExtractHTML pulls a usable HTML document out of raw model output:
// a full document span first, then a fenced code block, else the text
// as-is.
func ExtractHTML(text string) string {
	if strings.Contains(text, "<!DOCTYPE html>") || strings.Contains(text, "<html") {
		if m := doctypeRe.FindString(text); m != "" {
			return m
		}
		if m := htmlRe.FindString(text); m != "" {
			return m
		}
		return text
	}
	if m := fencedRe.FindStringSubmatch(text); len(m) == 2 {
		return m[1]
	}
	return text
}

func usableHTML(html string) bool {
	return len(html) >= 100 && strings.Contains(html, "<html")
}

func fallbackPage(d types.CreateDetails) string {
	page := fallbackTemplate
	page = strings.ReplaceAll(page, "{{name}}", d.LandingName)
	page = strings.ReplaceAll(page, "{{description}}", d.Description)
	page = strings.ReplaceAll(page, "{{purpose}}", d.Purpose)
	return page
}

var nonWordRe = regexp.MustCompile(`[^\w-]+`)

func slug(s string) string {
	return strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
