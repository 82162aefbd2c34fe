// Package classifier turns raw cast text into typed request details.
// All functions are pure; malformed or partial matches are treated as
// non-matches, never as errors.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"fc-landing-bot/internal/types"
)

// Help strings shown to users, shared with the Responder.
const (
	CreateFormatHelp = "Use format: (Name, Description, Purpose)"
	UpdateFormatHelp = "Use format: update siteName: (Name, Description, Purpose)"
)

var (
	createPattern = regexp.MustCompile(`\(([^,]+),\s*([^,]+),\s*([^)]+)\)`)
	updatePattern = regexp.MustCompile(`(?i)update\s+([^:]+):\s*\(([^,]+),\s*([^,]+),\s*([^)]+)\)`)
)

// Classifier matches cast text against the known request formats. An
// optional alternate create pattern may be configured alongside the
// built-in one.
type Classifier struct {
	createPatterns []*regexp.Regexp
}

// New builds a Classifier. altPattern, when non-empty, must be a
// regexp with at least three capture groups (name, description,
// purpose).
func New(altPattern string) (*Classifier, error) {
	patterns := []*regexp.Regexp{createPattern}
	if altPattern != "" {
		alt, err := regexp.Compile(altPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid alternate create pattern: %w", err)
		}
		patterns = append(patterns, alt)
	}
	return &Classifier{createPatterns: patterns}, nil
}

// IsHelp reports whether the text is a help request: "help" or "?"
// anywhere, case-insensitive. This check runs before the format
// matchers, so a create-formatted text containing "help" is still a
// help request.
func (c *Classifier) IsHelp(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "help") || strings.Contains(lower, "?")
}

// ParseCreate extracts create-request details from the text. The
// first pattern yielding three non-empty trimmed groups wins; no
// match returns nil.
func (c *Classifier) ParseCreate(text string) *types.CreateDetails {
	for _, re := range c.createPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 4 {
			continue
		}
		name := strings.TrimSpace(m[1])
		desc := strings.TrimSpace(m[2])
		purpose := strings.TrimSpace(m[3])
		if name == "" || desc == "" || purpose == "" {
			continue
		}
		return &types.CreateDetails{
			LandingName: name,
			Description: desc,
			Purpose:     purpose,
		}
	}
	return nil
}

// ParseUpdate extracts update-request details from the text. All four
// groups must be non-empty after trimming; no match returns nil.
func (c *Classifier) ParseUpdate(text string) *types.UpdateDetails {
	m := updatePattern.FindStringSubmatch(text)
	if len(m) < 5 {
		return nil
	}
	site := strings.TrimSpace(m[1])
	name := strings.TrimSpace(m[2])
	desc := strings.TrimSpace(m[3])
	purpose := strings.TrimSpace(m[4])
	if site == "" || name == "" || desc == "" || purpose == "" {
		return nil
	}
	return &types.UpdateDetails{
		SiteName:    site,
		LandingName: name,
		Description: desc,
		Purpose:     purpose,
	}
}
