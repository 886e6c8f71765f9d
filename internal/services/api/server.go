package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/solo.space/internal/campaign"
	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/platform/timeouts"
	"github.com/louisbranch/solo.space/internal/tables"
)

// CampaignService is the campaign behavior the API exposes.
type CampaignService interface {
	Create(ctx context.Context, input campaign.CreateInput) (campaign.Campaign, error)
	Get(ctx context.Context, campaignID string) (campaign.Campaign, error)
	BeginScene(ctx context.Context, campaignID string) (campaign.SceneResult, error)
	EndScene(ctx context.Context, campaignID string, input campaign.EndSceneInput) (campaign.Campaign, error)
	AskFate(ctx context.Context, campaignID string, input campaign.FateInput) (campaign.FateResult, error)
	RollCheck(ctx context.Context, campaignID string, input campaign.CheckInput) (campaign.CheckResult, error)
	RollTable(ctx context.Context, campaignID, tableID string, rollCtx tables.Context) (tables.Result, error)
	RollDice(ctx context.Context, campaignID string, notations []string) (campaign.DiceResult, error)
	ListRolls(ctx context.Context, campaignID string, limit int) ([]campaign.LogEntry, error)
	Tables() []content.Table
}

// Config tunes the API middleware.
type Config struct {
	// TokenKey enables bearer-token auth when set.
	TokenKey []byte
	// RateLimit is the request budget per client per second; zero disables it.
	RateLimit float64
}

// Server handles HTTP requests.
type Server struct {
	router  chi.Router
	service CampaignService
}

// NewServer creates a new API server over service.
func NewServer(service CampaignService, cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
	}
	s.setupRoutes(cfg)
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(cfg Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	if cfg.RateLimit > 0 {
		s.router.Use(NewRateLimiter(cfg.RateLimit).Middleware)
	}

	s.router.Get("/healthz", s.health)

	s.router.Route("/api", func(r chi.Router) {
		if len(cfg.TokenKey) > 0 {
			r.Use(NewTokenVerifier(cfg.TokenKey).Middleware)
		}
		r.Get("/tables", s.listTables)
		r.Post("/campaigns", s.createCampaign)
		r.Route("/campaigns/{id}", func(r chi.Router) {
			r.Get("/", s.getCampaign)
			r.Post("/scenes", s.beginScene)
			r.Post("/scenes/end", s.endScene)
			r.Post("/fate", s.askFate)
			r.Post("/checks", s.rollCheck)
			r.Post("/tables/{table}/roll", s.rollTable)
			r.Post("/dice", s.rollDice)
			r.Get("/rolls", s.listRolls)
		})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListenAndServe serves the API on addr until ctx ends, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s == nil {
		return errors.New("api server is nil")
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	log.Printf("api listening on %s", addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
