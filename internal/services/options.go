package services

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/time/rate"

	"github.com/light-bringer/procat-admin/internal/app/auth"
	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/controller"
	"github.com/light-bringer/procat-admin/internal/app/product/repo"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/save_product"
	"github.com/light-bringer/procat-admin/internal/config"
	"github.com/light-bringer/procat-admin/internal/pkg/clock"
	"github.com/light-bringer/procat-admin/internal/transport/web"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config     config.Config
	Logger     *slog.Logger
	Session    *auth.TokenSession
	Gateway    *repo.HTTPGateway
	Store      *catalog.Store
	Controller *controller.Controller
	WebHandler *web.Handler

	httpClient *http.Client
}

// NewLogger creates the process logger at the configured level.
func NewLogger(cfg config.Config) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewGateway creates the REST gateway for cfg, authenticated by tokens.
func NewGateway(cfg config.Config, tokens repo.TokenSource, logger *slog.Logger) (*repo.HTTPGateway, *http.Client) {
	client := &http.Client{Timeout: cfg.API.Timeout}

	var limiter *rate.Limiter
	if cfg.API.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.API.RPS), cfg.API.Burst)
	}

	gateway := repo.NewHTTPGateway(repo.Options{
		BaseURL: cfg.API.BaseURL,
		Client:  client,
		Tokens:  tokens,
		Limiter: limiter,
		Logger:  logger,
	})
	return gateway, client
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}

	// 1. Session
	session := auth.NewTokenSession(cfg.Auth.Token, cfg.Auth.Username, clock.NewRealClock(), logger)

	// 2. Gateway to the product service
	gateway, client := NewGateway(cfg, session, logger)

	// 3. Catalog state
	store := catalog.NewStore(gateway, cfg.UI.PageSize, logger)

	// 4. Write use cases
	saveProduct := save_product.NewInteractor(gateway, store, logger)
	deleteProduct := delete_product.NewInteractor(gateway, store, logger)

	// 5. View-mode controller
	ctrl := controller.New(store, saveProduct, deleteProduct, logger)

	// 6. Web handler
	webHandler, err := web.NewHandler(ctrl, store, session, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	return &ServiceOptions{
		Config:     cfg,
		Logger:     logger,
		Session:    session,
		Gateway:    gateway,
		Store:      store,
		Controller: ctrl,
		WebHandler: webHandler,
		httpClient: client,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.httpClient != nil {
		s.httpClient.CloseIdleConnections()
	}
}
