package types

import (
	"encoding/json"
	"time"
)

// MentionEvent is the normalized form of an inbound webhook payload.
// Both tolerated wire shapes are collapsed into this before any
// business logic runs.
type MentionEvent struct {
	CastID          string
	AuthorFID       string
	AuthorUsername  string
	Text            string
	Timestamp       time.Time // zero when the payload carried none
	ParentAuthorFID string
}

// HasTimestamp reports whether the event carried a usable timestamp.
func (e MentionEvent) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// Kind discriminates queued work items.
type Kind int

const (
	KindHelp Kind = iota
	KindGeneralMention
	KindNotOwnerError
	KindUpdateRequest
	KindCreateRequest
)

func (k Kind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindGeneralMention:
		return "general_mention"
	case KindNotOwnerError:
		return "not_owner_error"
	case KindUpdateRequest:
		return "update_request"
	case KindCreateRequest:
		return "create_request"
	}
	return "unknown"
}

// CreateDetails is the parsed "(Name, Description, Purpose)" triple.
type CreateDetails struct {
	LandingName string
	Description string
	Purpose     string
}

// UpdateDetails is the parsed "update siteName: (Name, Description,
// Purpose)" form.
type UpdateDetails struct {
	SiteName    string
	LandingName string
	Description string
	Purpose     string
}

// WorkItem is one queued unit of intent. Kind selects which payload
// pointer is set; the common fields are always populated.
type WorkItem struct {
	Kind           Kind
	CastID         string
	AuthorFID      string
	AuthorUsername string

	// KindGeneralMention
	MentionText string
	// KindNotOwnerError
	SiteName string
	// KindUpdateRequest
	Update *UpdateDetails
	// KindCreateRequest
	Create *CreateDetails
}

// OwnershipRecord binds a deployed site to the social identity that
// created it. Field names match the on-disk ledger format.
type OwnershipRecord struct {
	SiteID              string `json:"siteId"`
	SiteName            string `json:"siteName"`
	URL                 string `json:"url"`
	AuthorFID           string `json:"authorFid"`
	AuthorUsername      string `json:"authorUsername"`
	LandingName         string `json:"landingName"`
	DeploymentTimestamp string `json:"deploymentTimestamp"`
}

// DeploymentResult is the ephemeral outcome of one publish, passed
// from the Processor to the Responder.
type DeploymentResult struct {
	ID          string
	URL         string
	SiteID      string
	SiteName    string
	LandingName string
}

// Profile is a cast author or mentioned account on the wire.
type Profile struct {
	FID      json.Number `json:"fid"`
	Username string      `json:"username"`
}

// Cast is the cast object as delivered by the webhook.
type Cast struct {
	Hash         string   `json:"hash"`
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Timestamp    string   `json:"timestamp"`
	Author       *Profile `json:"author"`
	ParentAuthor *Profile `json:"parent_author"`
}

// WebhookPayload covers both tolerated body shapes: the legacy flat
// form with root-level mentioned_fids/parent_author_fid/cast, and the
// newer form with everything nested under data.
type WebhookPayload struct {
	MentionedFIDs     []json.Number `json:"mentioned_fids"`
	ParentAuthorFID   json.Number   `json:"parent_author_fid"`
	MentionedProfiles []Profile     `json:"mentioned_profiles"`
	Cast              *Cast         `json:"cast"`
	Data              *WebhookData  `json:"data"`
}

// WebhookData is the nested envelope of the newer webhook format.
type WebhookData struct {
	Cast              *Cast     `json:"cast"`
	MentionedProfiles []Profile `json:"mentioned_profiles"`
}
