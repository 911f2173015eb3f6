package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/config"
	"github.com/patrickwarner/openinapp/internal/dismissal"
	"github.com/patrickwarner/openinapp/internal/observability"
	"github.com/patrickwarner/openinapp/internal/useragent"
	"go.uber.org/zap"
)

// EvaluateInput asks for the banner decision of one client. Empty app
// fields fall back to the server's configuration.
type EvaluateInput struct {
	UserAgent         string `json:"user_agent"`
	ClientID          string `json:"client_id,omitempty"`
	ShowOnWeb         *bool  `json:"show_on_web,omitempty"`
	PlayStoreAppID    string `json:"play_store_app_id,omitempty"`
	PlayStoreBaseHref string `json:"play_store_base_href,omitempty"`
	AppStoreAppID     string `json:"app_store_app_id,omitempty"`
	AppStoreAppName   string `json:"app_store_app_name,omitempty"`
	AppStoreBaseHref  string `json:"app_store_base_href,omitempty"`
}

type DecisionOutput struct {
	Visible   bool   `json:"visible"`
	StoreLink string `json:"store_link"`
	Platform  string `json:"platform"`
	Reason    string `json:"reason"`
}

type DismissInput struct {
	ClientID string `json:"client_id"`
}

type DismissOutput struct {
	ClientID string `json:"client_id"`
	Value    string `json:"value"`
}

// BannerServer holds the tool dependencies.
type BannerServer struct {
	engine      *banner.Engine
	base        banner.Config
	backend     dismissal.Backend
	backendName string
	metrics     observability.MetricsRegistry
	logger      *zap.Logger
}

func (s *BannerServer) bannerConfig(in EvaluateInput) banner.Config {
	cfg := s.base
	if in.ShowOnWeb != nil {
		cfg.ShowOnWeb = *in.ShowOnWeb
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.PlayStoreAppID, in.PlayStoreAppID)
	override(&cfg.PlayStoreBaseHref, in.PlayStoreBaseHref)
	override(&cfg.AppStoreAppID, in.AppStoreAppID)
	override(&cfg.AppStoreAppName, in.AppStoreAppName)
	override(&cfg.AppStoreBaseHref, in.AppStoreBaseHref)
	return cfg
}

// Evaluate implements the evaluate_banner tool.
func (s *BannerServer) Evaluate(ctx context.Context, req *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, DecisionOutput, error) {
	var store banner.KeyValueStore
	if input.ClientID != "" {
		store = s.backend.For(input.ClientID)
	} else {
		// anonymous clients have never dismissed anything
		store = dismissal.NewMemoryBackend().For("")
	}
	sess := banner.NewSession(s.engine, s.bannerConfig(input), store, nil)
	d, err := sess.Observe(ctx, input.UserAgent)
	if err != nil {
		s.metrics.IncrementStoreErrors(s.backendName, "get")
		s.logger.Warn("dismissal lookup failed", zap.String("client_id", input.ClientID), zap.Error(err))
	}
	platform := string(d.Platform)
	if platform == "" {
		platform = "none"
	}
	s.metrics.IncrementDecision(platform, d.Reason, useragent.Describe(input.UserAgent).Type)
	s.logger.Debug("evaluated banner",
		zap.String("client_id", input.ClientID),
		zap.Bool("visible", d.Visible),
		zap.String("reason", d.Reason))
	return nil, DecisionOutput{
		Visible:   d.Visible,
		StoreLink: d.StoreLink,
		Platform:  string(d.Platform),
		Reason:    d.Reason,
	}, nil
}

// Dismiss implements the dismiss_banner tool.
func (s *BannerServer) Dismiss(ctx context.Context, req *mcp.CallToolRequest, input DismissInput) (*mcp.CallToolResult, DismissOutput, error) {
	if input.ClientID == "" {
		return nil, DismissOutput{}, fmt.Errorf("client_id is required")
	}
	sess := banner.NewSession(s.engine, s.base, s.backend.For(input.ClientID), nil)
	if err := sess.Dismiss(ctx); err != nil {
		s.metrics.IncrementStoreErrors(s.backendName, "set")
		return nil, DismissOutput{}, fmt.Errorf("dismiss: %w", err)
	}
	s.metrics.IncrementDismissals()
	s.logger.Info("banner dismissed", zap.String("client_id", input.ClientID))
	return nil, DismissOutput{ClientID: input.ClientID, Value: banner.DismissedValue}, nil
}

func main() {
	cfg := config.Load()

	// stdout carries the protocol, so logs go to stderr
	logger, err := observability.InitStderrLogger(cfg.ServiceName + "-mcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	backend, name, closeBackend, err := openToolBackend(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open dismissal backend", zap.Error(err))
	}
	defer closeBackend()

	// stdio has no scrape endpoint
	bs := &BannerServer{
		engine:      banner.NewEngine(cfg.BannerDefaults()),
		base:        cfg.BannerConfig(),
		backend:     backend,
		backendName: name,
		metrics:     observability.NewNoOpRegistry(),
		logger:      logger,
	}

	server := newMCPServer(bs)
	logger.Info("MCP Server running via stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// openToolBackend opens the same dismissal store the HTTP service uses.
// Cookies only exist in a browser, so the cookie backend is replaced by an
// in-process one.
func openToolBackend(cfg config.Config, logger *zap.Logger) (dismissal.Backend, string, func(), error) {
	backend, closeFn, err := dismissal.Open(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	if backend == nil {
		logger.Warn("cookie dismissal backend is not reachable from MCP, using in-memory store",
			zap.String("dismissal_backend", cfg.DismissalBackend))
		return dismissal.NewMemoryBackend(), dismissal.BackendMemory, closeFn, nil
	}
	return backend, cfg.DismissalBackend, closeFn, nil
}

func newMCPServer(bs *BannerServer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "openinapp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_banner",
		Description: "Decide whether the open-in-app banner shows for a user agent and which store link it offers",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_agent": map[string]interface{}{
					"type":        "string",
					"description": "Raw User-Agent header of the client",
				},
				"client_id": map[string]interface{}{
					"type":        "string",
					"description": "Client whose dismissal flag should be consulted (optional)",
				},
				"show_on_web": map[string]interface{}{
					"type":        "boolean",
					"description": "Show the banner on non-mobile browsers (optional)",
				},
				"play_store_app_id":    map[string]interface{}{"type": "string"},
				"play_store_base_href": map[string]interface{}{"type": "string"},
				"app_store_app_id":     map[string]interface{}{"type": "string"},
				"app_store_app_name":   map[string]interface{}{"type": "string"},
				"app_store_base_href":  map[string]interface{}{"type": "string"},
			},
			"required": []string{"user_agent"},
		},
	}, bs.Evaluate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dismiss_banner",
		Description: "Persist the banner dismissal flag for a client",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"client_id": map[string]interface{}{
					"type":        "string",
					"description": "Client to dismiss the banner for",
				},
			},
			"required": []string{"client_id"},
		},
	}, bs.Dismiss)

	return server
}
