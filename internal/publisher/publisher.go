// Package publisher deploys staged landing page directories to
// Netlify: create a uniquely named site (first publish) or reuse the
// existing one (update), upload the file set, then poll until the
// deploy is ready or the attempt budget runs out.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"fc-landing-bot/internal/types"
)

// ErrNoIndex is returned when the staging directory lacks an
// index.html entry point.
var ErrNoIndex = errors.New("no index.html file found in deployment directory")

const createSiteRetries = 3

// Metadata carries requester identity into site naming.
type Metadata struct {
	AuthorFID      string
	AuthorUsername string
}

// Publisher is a Netlify REST client with the bot's deploy policy.
type Publisher struct {
	base         string
	token        string
	client       *retryablehttp.Client
	pollAttempts int
	pollInterval time.Duration
	log          *zap.Logger
}

// Options configures a Publisher.
type Options struct {
	BaseURL      string
	Token        string
	PollAttempts int
	PollInterval time.Duration
}

// New builds a Publisher. Transient HTTP failures on individual calls
// are retried by the underlying retryable client.
func New(opts Options, log *zap.Logger) *Publisher {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &Publisher{
		base:         strings.TrimRight(opts.BaseURL, "/"),
		token:        opts.Token,
		client:       client,
		pollAttempts: opts.PollAttempts,
		pollInterval: opts.PollInterval,
		log:          log,
	}
}

type site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type deploy struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// Deploy publishes the directory to a brand new site and returns the
// deployment details. Readiness-poll exhaustion is non-fatal; the
// deploy is assumed complete.
func (p *Publisher) Deploy(ctx context.Context, dir, landingName string, meta Metadata) (types.DeploymentResult, error) {
	files, err := prepareFiles(dir)
	if err != nil {
		return types.DeploymentResult{}, err
	}

	s, err := p.createSite(ctx, siteName(landingName, meta.AuthorFID))
	if err != nil {
		return types.DeploymentResult{}, err
	}
	p.log.Info("site created", zap.String("site_id", s.ID), zap.String("site_name", s.Name))

	d, err := p.createDeploy(ctx, s.ID, files)
	if err != nil {
		return types.DeploymentResult{}, err
	}
	p.waitForReady(ctx, s.ID, d.ID)

	return types.DeploymentResult{
		ID:          d.ID,
		URL:         siteURL(s.Name),
		SiteID:      s.ID,
		SiteName:    s.Name,
		LandingName: landingName,
	}, nil
}

// UpdateExisting publishes the directory to an already created site.
// No new site is made; the returned URL is the site's current one.
func (p *Publisher) UpdateExisting(ctx context.Context, siteID, dir, landingName string) (types.DeploymentResult, error) {
	files, err := prepareFiles(dir)
	if err != nil {
		return types.DeploymentResult{}, err
	}

	d, err := p.createDeploy(ctx, siteID, files)
	if err != nil {
		return types.DeploymentResult{}, err
	}
	p.waitForReady(ctx, siteID, d.ID)

	s, err := p.getSite(ctx, siteID)
	if err != nil {
		return types.DeploymentResult{}, err
	}
	return types.DeploymentResult{
		ID:          d.ID,
		URL:         siteURL(s.Name),
		SiteID:      siteID,
		SiteName:    s.Name,
		LandingName: landingName,
	}, nil
}

// createSite creates a Netlify site, renaming and retrying on name
// collisions. Exhausted retries are a hard failure.
func (p *Publisher) createSite(ctx context.Context, name string) (site, error) {
	for attempt := 0; ; attempt++ {
		var s site
		status, err := p.do(ctx, http.MethodPost, "/sites", map[string]any{"name": name}, &s)
		if err != nil {
			return site{}, fmt.Errorf("create site: %w", err)
		}
		if status < 300 {
			return s, nil
		}
		if status != http.StatusUnprocessableEntity || attempt >= createSiteRetries {
			return site{}, fmt.Errorf("create site %q: status %d", name, status)
		}
		name = fmt.Sprintf("%s-%s", name, shortID())
		p.log.Info("site name taken, retrying", zap.String("site_name", name))
	}
}

func (p *Publisher) createDeploy(ctx context.Context, siteID string, files map[string]string) (deploy, error) {
	var d deploy
	body := map[string]any{"files": files, "functions": map[string]any{}}
	status, err := p.do(ctx, http.MethodPost, "/sites/"+siteID+"/deploys", body, &d)
	if err != nil {
		return deploy{}, fmt.Errorf("create deploy: %w", err)
	}
	if status >= 300 {
		return deploy{}, fmt.Errorf("create deploy: status %d", status)
	}
	return d, nil
}

// waitForReady polls the deploy state a bounded number of times.
// Errors and timeouts degrade to assuming the deploy completed.
func (p *Publisher) waitForReady(ctx context.Context, siteID, deployID string) {
	for i := 0; i < p.pollAttempts; i++ {
		var d deploy
		status, err := p.do(ctx, http.MethodGet, "/sites/"+siteID+"/deploys/"+deployID, nil, &d)
		if err == nil && status < 300 && d.State == "ready" {
			return
		}
		if err != nil {
			p.log.Warn("deploy status check failed", zap.Error(err))
		}
		select {
		case <-time.After(p.pollInterval):
		case <-ctx.Done():
			return
		}
	}
	p.log.Warn("deploy readiness poll exhausted, assuming complete",
		zap.String("site_id", siteID), zap.String("deploy_id", deployID))
}

func (p *Publisher) getSite(ctx context.Context, siteID string) (site, error) {
	var s site
	status, err := p.do(ctx, http.MethodGet, "/sites/"+siteID, nil, &s)
	if err != nil {
		return site{}, fmt.Errorf("get site: %w", err)
	}
	if status >= 300 {
		return site{}, fmt.Errorf("get site: status %d", status)
	}
	return s, nil
}

func (p *Publisher) do(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, p.base+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// prepareFiles reads the staging directory into a name→content map
// and injects the default hosting config files when absent. A missing
// index.html is a hard failure.
func prepareFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read deploy dir: %w", err)
	}
	files := make(map[string]string, len(entries)+3)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		files[entry.Name()] = string(content)
	}
	if _, ok := files["index.html"]; !ok {
		return nil, ErrNoIndex
	}
	if _, ok := files["_redirects"]; !ok {
		files["_redirects"] = "/ /index.html 200\n/* /index.html 404\n"
	}
	if _, ok := files["_headers"]; !ok {
		files["_headers"] = "/*\n  Cache-Control: public, max-age=3600\n"
	}
	meta, _ := json.Marshal(map[string]string{
		"name":        dir,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
	files["deployment-meta.json"] = string(meta)
	return files, nil
}

var nonWordRe = regexp.MustCompile(`[^\w-]+`)

// siteName builds a unique destination name from the landing name and
// requester identity.
func siteName(landingName, authorFID string) string {
	clean := strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(landingName), "-"), "-")
	who := authorFID
	if who == "" {
		who = shortID()
	}
	return fmt.Sprintf("landing-%s-%s-%s", clean, who, shortID())
}

func siteURL(name string) string {
	return fmt.Sprintf("https://%s.netlify.app", name)
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
