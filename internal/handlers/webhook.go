package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fc-landing-bot/internal/classifier"
	"fc-landing-bot/internal/types"
)

// WebhookHandler filters inbound mention events and enqueues typed
// work items. The webhook always answers synchronously; downstream
// processing happens on the dispatcher's clock.
type WebhookHandler struct {
	BotFID    string
	StartTime time.Time

	Classifier *classifier.Classifier
	// IsOwner resolves whether the author created the named site.
	IsOwner func(siteName, authorFID string) bool
	Enqueue func(item types.WorkItem)

	Log *zap.Logger
}

// Handle processes one webhook delivery. Decision order: self-mention
// guard, relevance, payload validity, freshness, classification.
func (h WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.Log.Error("webhook panic", zap.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}

	cast, mentioned, parentFID := normalize(body)

	// Never react to the bot's own casts; replying to ourselves would
	// loop forever through the webhook.
	if cast != nil && cast.Author != nil && cast.Author.FID.String() == h.BotFID {
		h.Log.Info("ignoring self cast", zap.String("fid", h.BotFID))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "self_cast"})
		return
	}

	if !h.isRelevant(cast, mentioned, parentFID) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if cast == nil || cast.Text == "" {
		h.Log.Warn("invalid webhook payload: missing cast text")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}

	event := eventFrom(cast, parentFID)
	if event.HasTimestamp() && event.Timestamp.Before(h.StartTime) {
		h.Log.Info("ignoring mention from before startup",
			zap.String("author_fid", event.AuthorFID),
			zap.Time("cast_time", event.Timestamp))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "before_startup"})
		return
	}

	h.Log.Info("received mention",
		zap.String("author_fid", event.AuthorFID),
		zap.String("text", event.Text))

	item, queuedType := h.classify(event)
	h.Enqueue(item)
	writeJSON(w, http.StatusOK, map[string]string{"status": "queued", "type": queuedType})
}

// classify maps the event text to exactly one work item. Priority:
// help, update (with ownership resolution), create, general.
func (h WebhookHandler) classify(event types.MentionEvent) (types.WorkItem, string) {
	item := types.WorkItem{
		CastID:         event.CastID,
		AuthorFID:      event.AuthorFID,
		AuthorUsername: event.AuthorUsername,
	}

	if h.Classifier.IsHelp(event.Text) {
		item.Kind = types.KindHelp
		return item, "help_request"
	}

	if update := h.Classifier.ParseUpdate(event.Text); update != nil {
		if h.IsOwner(update.SiteName, event.AuthorFID) {
			item.Kind = types.KindUpdateRequest
			item.Update = update
			return item, "site_update"
		}
		h.Log.Info("update denied, not the owner",
			zap.String("site_name", update.SiteName),
			zap.String("author_fid", event.AuthorFID))
		item.Kind = types.KindNotOwnerError
		item.SiteName = update.SiteName
		return item, "not_owner_error"
	}

	if create := h.Classifier.ParseCreate(event.Text); create != nil {
		item.Kind = types.KindCreateRequest
		item.Create = create
		return item, "landing_page"
	}

	item.Kind = types.KindGeneralMention
	item.MentionText = event.Text
	return item, "general_mention"
}

func (h WebhookHandler) isRelevant(cast *types.Cast, mentioned []string, parentFID string) bool {
	for _, fid := range mentioned {
		if fid == h.BotFID {
			return true
		}
	}
	if parentFID != "" && parentFID == h.BotFID {
		return true
	}
	return cast != nil && cast.ParentAuthor != nil && cast.ParentAuthor.FID.String() == h.BotFID
}

// normalize collapses the tolerated payload shapes into one cast plus
// the union of all mentioned FIDs. Precedence: nested data envelope,
// then root-level cast, then the body itself as a bare cast.
func normalize(body []byte) (cast *types.Cast, mentioned []string, parentFID string) {
	var p types.WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, nil, ""
	}

	if p.Data != nil && p.Data.Cast != nil {
		cast = p.Data.Cast
	} else if p.Cast != nil {
		cast = p.Cast
	} else {
		var bare types.Cast
		if err := json.Unmarshal(body, &bare); err == nil && (bare.Text != "" || bare.Author != nil) {
			cast = &bare
		}
	}

	for _, fid := range p.MentionedFIDs {
		mentioned = append(mentioned, fid.String())
	}
	for _, profile := range p.MentionedProfiles {
		mentioned = append(mentioned, profile.FID.String())
	}
	if p.Data != nil {
		for _, profile := range p.Data.MentionedProfiles {
			mentioned = append(mentioned, profile.FID.String())
		}
	}
	return cast, mentioned, p.ParentAuthorFID.String()
}

func eventFrom(cast *types.Cast, parentFID string) types.MentionEvent {
	castID := cast.Hash
	if castID == "" {
		castID = cast.ID
	}
	event := types.MentionEvent{
		CastID:          castID,
		Text:            cast.Text,
		Timestamp:       parseTimestamp(cast.Timestamp),
		ParentAuthorFID: parentFID,
	}
	if cast.Author != nil {
		event.AuthorFID = cast.Author.FID.String()
		event.AuthorUsername = cast.Author.Username
	}
	if cast.ParentAuthor != nil {
		event.ParentAuthorFID = cast.ParentAuthor.FID.String()
	}
	return event
}

// parseTimestamp accepts RFC3339 or unix milliseconds. Anything else
// counts as absent; the freshness check then fails open.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return time.Time{}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
