// Package processor orchestrates the create and update workflows:
// generate content, stage it locally, publish, and (for creates)
// record ownership.
package processor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fc-landing-bot/internal/publisher"
	"fc-landing-bot/internal/types"
)

// ContentGenerator produces and stages page content.
type ContentGenerator interface {
	GeneratePage(ctx context.Context, d types.CreateDetails) string
	SavePage(html, landingName string) (string, error)
}

// SitePublisher deploys staged directories.
type SitePublisher interface {
	Deploy(ctx context.Context, dir, landingName string, meta publisher.Metadata) (types.DeploymentResult, error)
	UpdateExisting(ctx context.Context, siteID, dir, landingName string) (types.DeploymentResult, error)
}

// OwnerLedger records and resolves site ownership.
type OwnerLedger interface {
	Append(rec types.OwnershipRecord) error
	Find(siteName string) (types.OwnershipRecord, error)
}

// Processor runs one queued request end to end. Any step's failure
// aborts the whole request; the dispatcher turns that into a
// user-facing error reply.
type Processor struct {
	Generator ContentGenerator
	Publisher SitePublisher
	Ledger    OwnerLedger
	Log       *zap.Logger
}

// ProcessCreate handles a first-time landing page request:
// generate → stage → publish to a fresh site → record ownership.
func (p *Processor) ProcessCreate(ctx context.Context, item types.WorkItem) (types.DeploymentResult, error) {
	details := *item.Create
	p.Log.Info("processing landing page request",
		zap.String("landing_name", details.LandingName),
		zap.String("author_fid", item.AuthorFID))

	html := p.Generator.GeneratePage(ctx, details)
	dir, err := p.Generator.SavePage(html, details.LandingName)
	if err != nil {
		return types.DeploymentResult{}, fmt.Errorf("failed to process request: %w", err)
	}

	result, err := p.Publisher.Deploy(ctx, dir, details.LandingName, publisher.Metadata{
		AuthorFID:      item.AuthorFID,
		AuthorUsername: item.AuthorUsername,
	})
	if err != nil {
		return types.DeploymentResult{}, fmt.Errorf("failed to process request: %w", err)
	}

	rec := types.OwnershipRecord{
		SiteID:              result.SiteID,
		SiteName:            result.SiteName,
		URL:                 result.URL,
		AuthorFID:           item.AuthorFID,
		AuthorUsername:      item.AuthorUsername,
		LandingName:         details.LandingName,
		DeploymentTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.Ledger.Append(rec); err != nil {
		return types.DeploymentResult{}, fmt.Errorf("failed to record ownership: %w", err)
	}
	return result, nil
}

// ProcessUpdate handles an update to an existing site. The ownership
// record must already exist; content is regenerated and published to
// the same destination, and the record is left untouched.
func (p *Processor) ProcessUpdate(ctx context.Context, item types.WorkItem) (types.DeploymentResult, error) {
	details := *item.Update
	p.Log.Info("processing update request",
		zap.String("site_name", details.SiteName),
		zap.String("author_fid", item.AuthorFID))

	rec, err := p.Ledger.Find(details.SiteName)
	if err != nil {
		return types.DeploymentResult{}, fmt.Errorf("site not found: %s", details.SiteName)
	}

	html := p.Generator.GeneratePage(ctx, types.CreateDetails{
		LandingName: details.LandingName,
		Description: details.Description,
		Purpose:     details.Purpose,
	})
	dir, err := p.Generator.SavePage(html, details.LandingName)
	if err != nil {
		return types.DeploymentResult{}, fmt.Errorf("failed to process update request: %w", err)
	}

	result, err := p.Publisher.UpdateExisting(ctx, rec.SiteID, dir, details.LandingName)
	if err != nil {
		return types.DeploymentResult{}, fmt.Errorf("failed to process update request: %w", err)
	}
	// Report the original URL; the site identity has not changed.
	result.URL = rec.URL
	return result, nil
}
