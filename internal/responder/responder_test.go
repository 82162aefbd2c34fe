package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc-landing-bot/internal/types"
)

type castRequest struct {
	SignerUUID string `json:"signer_uuid"`
	Text       string `json:"text"`
	Parent     string `json:"parent"`
	Embeds     []struct {
		URL string `json:"url"`
	} `json:"embeds"`
}

func newTestResponder(t *testing.T, status int) (*Responder, *castRequest) {
	t.Helper()
	var got castRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/farcaster/cast", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("api_key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"hash":"0xreply"}`))
	}))
	t.Cleanup(srv.Close)

	return New(Options{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		SignerUUID:  "signer-1",
		BotUsername: "forg",
	}), &got
}

func TestSendResponse_RequiresCastID(t *testing.T) {
	r, _ := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{Kind: OutcomeHelp})
	assert.Error(t, err)
}

func TestSendResponse_Help(t *testing.T) {
	r, got := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:           OutcomeHelp,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "signer-1", got.SignerUUID)
	assert.Equal(t, "0xcast", got.Parent)
	assert.Contains(t, got.Text, "@alice")
	// Help must show the literal create-format example.
	assert.Contains(t, got.Text, `(My Project, A cool new app, Collecting early signups)`)
	assert.Contains(t, got.Text, "update siteName:")
	assert.Empty(t, got.Embeds)
}

func TestSendResponse_NotOwner(t *testing.T) {
	r, got := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:      OutcomeNotOwner,
		CastID:    "0xcast",
		AuthorFID: "99",
		SiteName:  "landing-acme-42",
	})
	require.NoError(t, err)

	assert.Contains(t, got.Text, "permission")
	assert.Contains(t, got.Text, "landing-acme-42")
	// No username known: fall back to the FID handle.
	assert.Contains(t, got.Text, "@user_99")
}

func TestSendResponse_CreateSuccessEmbedsURL(t *testing.T) {
	r, got := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:           OutcomeCreated,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
		LandingName:    "Acme",
		URL:            "https://landing-acme-42.netlify.app",
	})
	require.NoError(t, err)

	assert.Contains(t, got.Text, `"Acme" is live!`)
	assert.Contains(t, got.Text, "https://landing-acme-42.netlify.app")
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "https://landing-acme-42.netlify.app", got.Embeds[0].URL)
}

func TestSendResponse_UpdateSuccess(t *testing.T) {
	r, got := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:           OutcomeUpdated,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
		LandingName:    "Acme2",
		URL:            "https://landing-acme-42.netlify.app",
	})
	require.NoError(t, err)

	assert.Contains(t, got.Text, `"Acme2" has been updated!`)
	require.Len(t, got.Embeds, 1)
}

func TestSendResponse_General(t *testing.T) {
	r, got := newTestResponder(t, http.StatusOK)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:           OutcomeGeneral,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
		MentionText:    "what a day",
	})
	require.NoError(t, err)

	assert.Contains(t, got.Text, "Thanks for the mention")
	assert.Contains(t, got.Text, "@forg")
}

func TestSendResponse_PostFailureSurfaces(t *testing.T) {
	r, _ := newTestResponder(t, http.StatusForbidden)
	err := r.SendResponse(context.Background(), Outcome{
		Kind:   OutcomeHelp,
		CastID: "0xcast",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestOutcomeFor(t *testing.T) {
	help := OutcomeFor(types.WorkItem{Kind: types.KindHelp, CastID: "1", AuthorFID: "42"})
	assert.Equal(t, OutcomeHelp, help.Kind)
	assert.Equal(t, "1", help.CastID)

	notOwner := OutcomeFor(types.WorkItem{Kind: types.KindNotOwnerError, SiteName: "s"})
	assert.Equal(t, OutcomeNotOwner, notOwner.Kind)
	assert.Equal(t, "s", notOwner.SiteName)

	general := OutcomeFor(types.WorkItem{Kind: types.KindGeneralMention, MentionText: "hey"})
	assert.Equal(t, OutcomeGeneral, general.Kind)
	assert.Equal(t, "hey", general.MentionText)
}
