package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fc-landing-bot/internal/ledger"
	"fc-landing-bot/internal/publisher"
	"fc-landing-bot/internal/types"
)

type stubGenerator struct {
	staging  string
	saveErr  error
	lastHTML string
}

func (g *stubGenerator) GeneratePage(_ context.Context, d types.CreateDetails) string {
	return "<html><body>" + d.LandingName + "</body></html>"
}

func (g *stubGenerator) SavePage(html, landingName string) (string, error) {
	if g.saveErr != nil {
		return "", g.saveErr
	}
	g.lastHTML = html
	dir := filepath.Join(g.staging, landingName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0o644)
}

type stubPublisher struct {
	deployed     []string
	updated      []string
	deployErr    error
	updateErr    error
	updateResult types.DeploymentResult
}

func (p *stubPublisher) Deploy(_ context.Context, dir, landingName string, meta publisher.Metadata) (types.DeploymentResult, error) {
	if p.deployErr != nil {
		return types.DeploymentResult{}, p.deployErr
	}
	p.deployed = append(p.deployed, dir)
	name := "landing-" + strings.ToLower(landingName) + "-" + meta.AuthorFID
	return types.DeploymentResult{
		ID:          "deploy-1",
		URL:         "https://" + name + ".netlify.app",
		SiteID:      "site-1",
		SiteName:    name,
		LandingName: landingName,
	}, nil
}

func (p *stubPublisher) UpdateExisting(_ context.Context, siteID, dir, landingName string) (types.DeploymentResult, error) {
	if p.updateErr != nil {
		return types.DeploymentResult{}, p.updateErr
	}
	p.updated = append(p.updated, siteID)
	result := p.updateResult
	result.SiteID = siteID
	result.LandingName = landingName
	return result, nil
}

func newTestProcessor(t *testing.T) (*Processor, *stubGenerator, *stubPublisher, *ledger.Ledger) {
	t.Helper()
	gen := &stubGenerator{staging: t.TempDir()}
	pub := &stubPublisher{}
	led := ledger.New(filepath.Join(t.TempDir(), "ownership.json"))
	return &Processor{Generator: gen, Publisher: pub, Ledger: led, Log: zap.NewNop()}, gen, pub, led
}

func createItem() types.WorkItem {
	return types.WorkItem{
		Kind:           types.KindCreateRequest,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
		Create:         &types.CreateDetails{LandingName: "Acme", Description: "A widget store", Purpose: "early signups"},
	}
}

func TestProcessCreate(t *testing.T) {
	p, gen, pub, led := newTestProcessor(t)

	result, err := p.ProcessCreate(context.Background(), createItem())
	require.NoError(t, err)

	assert.Contains(t, result.URL, "netlify.app")
	assert.Contains(t, result.URL, "acme")
	assert.Contains(t, gen.lastHTML, "Acme")
	require.Len(t, pub.deployed, 1)

	// Ownership is recorded for the new site.
	rec, err := led.Find(result.SiteName)
	require.NoError(t, err)
	assert.Equal(t, "42", rec.AuthorFID)
	assert.Equal(t, "alice", rec.AuthorUsername)
	assert.Equal(t, "Acme", rec.LandingName)
	assert.Equal(t, result.URL, rec.URL)
	assert.NotEmpty(t, rec.DeploymentTimestamp)
}

func TestProcessCreate_SaveFailureAborts(t *testing.T) {
	p, gen, pub, led := newTestProcessor(t)
	gen.saveErr = errors.New("disk full")

	_, err := p.ProcessCreate(context.Background(), createItem())
	require.Error(t, err)
	assert.Empty(t, pub.deployed)
	_, err = led.Find("anything")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestProcessCreate_DeployFailureAborts(t *testing.T) {
	p, _, pub, led := newTestProcessor(t)
	pub.deployErr = errors.New("netlify down")

	_, err := p.ProcessCreate(context.Background(), createItem())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlify down")
	_, err = led.Find("anything")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func updateItem(site string) types.WorkItem {
	return types.WorkItem{
		Kind:           types.KindUpdateRequest,
		CastID:         "0xcast",
		AuthorFID:      "42",
		AuthorUsername: "alice",
		Update:         &types.UpdateDetails{SiteName: site, LandingName: "Acme2", Description: "d", Purpose: "p"},
	}
}

func TestProcessUpdate(t *testing.T) {
	p, _, pub, led := newTestProcessor(t)
	require.NoError(t, led.Append(types.OwnershipRecord{
		SiteID:    "site-1",
		SiteName:  "landing-acme-42",
		URL:       "https://landing-acme-42.netlify.app",
		AuthorFID: "42",
	}))
	pub.updateResult = types.DeploymentResult{ID: "deploy-2", URL: "https://renamed.netlify.app"}

	result, err := p.ProcessUpdate(context.Background(), updateItem("landing-acme-42"))
	require.NoError(t, err)

	// Update publishes to the existing site and reports the original URL.
	assert.Equal(t, []string{"site-1"}, pub.updated)
	assert.Equal(t, "https://landing-acme-42.netlify.app", result.URL)
	assert.Equal(t, "Acme2", result.LandingName)

	// The ownership record is not rewritten on update.
	rec, err := led.Find("landing-acme-42")
	require.NoError(t, err)
	assert.Equal(t, "42", rec.AuthorFID)
	assert.Empty(t, rec.LandingName)
}

func TestProcessUpdate_MissingRecordIsHardFailure(t *testing.T) {
	p, _, pub, _ := newTestProcessor(t)

	_, err := p.ProcessUpdate(context.Background(), updateItem("landing-unknown"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site not found")
	assert.Empty(t, pub.updated)
}
