// Package responder posts reply casts back to the original mention
// through the Neynar publish-cast API.
package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"fc-landing-bot/internal/types"
)

// OutcomeKind selects the reply template.
type OutcomeKind int

const (
	OutcomeHelp OutcomeKind = iota
	OutcomeGeneral
	OutcomeNotOwner
	OutcomeCreated
	OutcomeUpdated
)

// Outcome is everything the responder needs to render and post one
// reply.
type Outcome struct {
	Kind           OutcomeKind
	CastID         string
	AuthorFID      string
	AuthorUsername string

	// OutcomeGeneral
	MentionText string
	// OutcomeNotOwner
	SiteName string
	// OutcomeCreated / OutcomeUpdated
	LandingName string
	URL         string
}

// OutcomeFor maps a directly-answerable work item (help, general
// mention, not-owner) to its reply outcome.
func OutcomeFor(item types.WorkItem) Outcome {
	out := Outcome{
		CastID:         item.CastID,
		AuthorFID:      item.AuthorFID,
		AuthorUsername: item.AuthorUsername,
	}
	switch item.Kind {
	case types.KindHelp:
		out.Kind = OutcomeHelp
	case types.KindNotOwnerError:
		out.Kind = OutcomeNotOwner
		out.SiteName = item.SiteName
	default:
		out.Kind = OutcomeGeneral
		out.MentionText = item.MentionText
	}
	return out
}

// Responder posts replies via Neynar.
type Responder struct {
	base        string
	apiKey      string
	signerUUID  string
	botUsername string
	client      *retryablehttp.Client
}

// Options configures a Responder.
type Options struct {
	BaseURL     string
	APIKey      string
	SignerUUID  string
	BotUsername string
}

// New builds a Responder.
func New(opts Options) *Responder {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &Responder{
		base:        strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		signerUUID:  opts.SignerUUID,
		botUsername: opts.BotUsername,
		client:      client,
	}
}

// SendResponse renders the outcome's message and posts it as a reply
// to the original cast. Posting failures are returned to the caller.
func (r *Responder) SendResponse(ctx context.Context, out Outcome) error {
	if out.CastID == "" {
		return errors.New("cast ID is required for sending a response")
	}

	message, embeds := r.BuildMessage(out)
	body := map[string]any{
		"signer_uuid": r.signerUUID,
		"text":        message,
		"parent":      out.CastID,
	}
	if len(embeds) > 0 {
		body["embeds"] = embeds
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		r.base+"/v2/farcaster/cast", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api_key", r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send response: status %d", resp.StatusCode)
	}
	return nil
}

// Embed is a URL attachment on a reply cast.
type Embed struct {
	URL string `json:"url"`
}

// BuildMessage renders the reply text and URL embeds for an outcome.
func (r *Responder) BuildMessage(out Outcome) (string, []Embed) {
	username := out.AuthorUsername
	if username == "" {
		username = "user_" + out.AuthorFID
	}

	switch out.Kind {
	case OutcomeHelp:
		return fmt.Sprintf(`@%s 🤖 How to use:

"@%[2]s (Name, Description, Purpose)"
Example: "@%[2]s (My Project, A cool new app, Collecting early signups)"

To update your existing landing page:
"@%[2]s update siteName: (New Name, New Description, New Purpose)"
Example: "@%[2]s update landing-my-project-abc123: (My Updated Project, An awesome app, Getting beta testers)"

I'll generate and deploy a landing page for you instantly!`, username, r.botUsername), nil

	case OutcomeNotOwner:
		return fmt.Sprintf(`@%s ❌ Sorry, you don't have permission to update the site "%s". Only the original creator can update it.`,
			username, out.SiteName), nil

	case OutcomeUpdated:
		msg := fmt.Sprintf("@%s 🔄 Your landing page \"%s\" has been updated!\n\n%s\n\n#FarcasterLanding",
			username, out.LandingName, out.URL)
		return msg, []Embed{{URL: out.URL}}

	case OutcomeCreated:
		msg := fmt.Sprintf("@%s 🚀 Your landing page \"%s\" is live!\n\n%s\n\n#FarcasterLanding",
			username, out.LandingName, out.URL)
		return msg, []Embed{{URL: out.URL}}
	}

	return fmt.Sprintf(`@%s 👋 Thanks for the mention! I'm @%[2]s, a bot that creates landing pages.

To use me, mention me with the format: (Name, Description, Purpose)

To update an existing page, use: update siteName: (Name, Description, Purpose)

Or type "@%[2]s help" to learn more about what I can do.`, username, r.botUsername), nil
}
