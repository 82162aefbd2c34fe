package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc-landing-bot/internal/types"
)

func mustNew(t *testing.T) *Classifier {
	t.Helper()
	c, err := New("")
	require.NoError(t, err)
	return c
}

func TestParseCreate(t *testing.T) {
	c := mustNew(t)

	tests := []struct {
		name string
		text string
		want *types.CreateDetails
	}{
		{
			name: "well formed",
			text: "@forg (Acme, A widget store, early signups)",
			want: &types.CreateDetails{LandingName: "Acme", Description: "A widget store", Purpose: "early signups"},
		},
		{
			name: "whitespace trimmed",
			text: "( My Project ,  A cool new app , Collecting early signups )",
			want: &types.CreateDetails{LandingName: "My Project", Description: "A cool new app", Purpose: "Collecting early signups"},
		},
		{
			name: "empty segment",
			text: "(Acme, , early signups)",
			want: nil,
		},
		{
			name: "missing parenthesis",
			text: "Acme, A widget store, early signups",
			want: nil,
		},
		{
			name: "only two segments",
			text: "(Acme, A widget store)",
			want: nil,
		},
		{
			name: "plain text",
			text: "hello there",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ParseCreate(tt.text))
		})
	}
}

func TestParseCreate_AltPattern(t *testing.T) {
	c, err := New(`\[([^;]+);\s*([^;]+);\s*([^\]]+)\]`)
	require.NoError(t, err)

	got := c.ParseCreate("[Acme; A widget store; early signups]")
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.LandingName)

	// Built-in pattern still wins when both could match.
	got = c.ParseCreate("(A, B, C) [X; Y; Z]")
	require.NotNil(t, got)
	assert.Equal(t, "A", got.LandingName)
}

func TestParseCreate_InvalidAltPattern(t *testing.T) {
	_, err := New("(unclosed")
	assert.Error(t, err)
}

func TestParseUpdate(t *testing.T) {
	c := mustNew(t)

	tests := []struct {
		name string
		text string
		want *types.UpdateDetails
	}{
		{
			name: "well formed",
			text: "@forg update landing-acme-42: (Acme2, desc, purpose)",
			want: &types.UpdateDetails{SiteName: "landing-acme-42", LandingName: "Acme2", Description: "desc", Purpose: "purpose"},
		},
		{
			name: "case insensitive",
			text: "UPDATE my-site: (N, D, P)",
			want: &types.UpdateDetails{SiteName: "my-site", LandingName: "N", Description: "D", Purpose: "P"},
		},
		{
			name: "missing colon",
			text: "update my-site (N, D, P)",
			want: nil,
		},
		{
			name: "empty group",
			text: "update my-site: (N, , P)",
			want: nil,
		},
		{
			name: "create format only",
			text: "(N, D, P)",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ParseUpdate(tt.text))
		})
	}
}

func TestIsHelp(t *testing.T) {
	c := mustNew(t)

	assert.True(t, c.IsHelp("@forg help"))
	assert.True(t, c.IsHelp("HELP me please"))
	assert.True(t, c.IsHelp("what do you do?"))
	assert.False(t, c.IsHelp("(Acme, A widget store, early signups)"))
	// Help trigger outranks the create format by design.
	assert.True(t, c.IsHelp("help me make (Acme, A widget store, early signups)"))
}
