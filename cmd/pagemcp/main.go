// pagemcp exposes the landing page pipeline as MCP tools, so the
// generate/deploy flow and the ownership ledger can be driven without
// going through the social network.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"fc-landing-bot/internal/config"
	"fc-landing-bot/internal/generator"
	"fc-landing-bot/internal/ledger"
	"fc-landing-bot/internal/processor"
	"fc-landing-bot/internal/publisher"
	"fc-landing-bot/internal/types"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" || cfg.NetlifyToken == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY and NETLIFY_AUTH_TOKEN are required for pagemcp")
		os.Exit(1)
	}

	ctx := context.Background()
	gen, err := generator.New(ctx, generator.Options{
		APIKey:    cfg.GeminiAPIKey,
		Model:     cfg.GeminiModel,
		Timeout:   cfg.GenerateTimeout,
		Retries:   cfg.GenerateRetries,
		OutputDir: cfg.OutputDir,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize generator", zap.Error(err))
	}
	pub := publisher.New(publisher.Options{
		BaseURL:      cfg.NetlifyBase,
		Token:        cfg.NetlifyToken,
		PollAttempts: cfg.DeployPollAttempts,
		PollInterval: cfg.DeployPollInterval,
	}, logger)
	led := ledger.New(cfg.OwnershipFile)
	proc := &processor.Processor{Generator: gen, Publisher: pub, Ledger: led, Log: logger}

	s := server.NewMCPServer(
		"landing-pages",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	deployTool := mcp.Tool{
		Name:        "landing.generate_deploy",
		Description: "Generate a landing page and deploy it to a new site",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"name":        map[string]any{"type": "string", "description": "Landing page name"},
				"description": map[string]any{"type": "string", "description": "What the project is"},
				"purpose":     map[string]any{"type": "string", "description": "What the page is for"},
				"author_fid":  map[string]any{"type": "string", "description": "Requester identity recorded as owner"},
			},
			Required: []string{"name", "description", "purpose"},
		},
	}
	s.AddTool(deployTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description, err := request.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		purpose, err := request.RequireString("purpose")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fid := request.GetString("author_fid", "operator")

		item := types.WorkItem{
			Kind:      types.KindCreateRequest,
			CastID:    "mcp-" + time.Now().UTC().Format("20060102T150405"),
			AuthorFID: fid,
			Create: &types.CreateDetails{
				LandingName: name,
				Description: description,
				Purpose:     purpose,
			},
		}
		result, err := proc.ProcessCreate(ctx, item)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result.URL), nil
	})

	ownerTool := mcp.Tool{
		Name:        "landing.check_ownership",
		Description: "Check whether a FID owns a deployed site",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"site_name": map[string]any{"type": "string", "description": "The deployed site name"},
				"fid":       map[string]any{"type": "string", "description": "The identity to check"},
			},
			Required: []string{"site_name", "fid"},
		},
	}
	s.AddTool(ownerTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		siteName, err := request.RequireString("site_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fid, err := request.RequireString("fid")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if led.IsOwner(siteName, fid) {
			return mcp.NewToolResultText("owner"), nil
		}
		return mcp.NewToolResultText("not_owner"), nil
	})

	port := getEnv("PORT", "8081")
	httpServer := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)
	logger.Info("landing-pages MCP server listening", zap.String("port", port))
	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}
