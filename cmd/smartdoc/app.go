package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wandile0157/smartdoc-ai-backend/internal/analysis"
	"github.com/wandile0157/smartdoc-ai-backend/internal/api"
	"github.com/wandile0157/smartdoc-ai-backend/internal/clients"
	"github.com/wandile0157/smartdoc-ai-backend/internal/config"
	"github.com/wandile0157/smartdoc-ai-backend/internal/store"
)

// AppContext holds all constructed application dependencies shared across
// subcommands. It is built once in PersistentPreRunE and referenced by
// server.go and analyze.go.
type AppContext struct {
	cfg      *config.Config
	supabase *clients.Supabase
	store    store.Store
	svc      *analysis.Service
	router   *gin.Engine
}

// buildAppContext constructs all application dependencies from cfg:
//  1. Creates the Supabase client when credentials are configured
//  2. Selects the analysis store (Supabase-backed or in-memory)
//  3. Creates the analysis service
//  4. Creates the HTTP router
func buildAppContext(cfg *config.Config) (*AppContext, error) {
	app := &AppContext{cfg: cfg}

	// Supabase is optional. Without credentials the API still serves
	// analysis requests; auth-gated routes report the service unavailable
	// and history is kept in memory for the process lifetime.
	if cfg.Supabase.Configured() {
		sb, err := clients.NewSupabase(cfg.Supabase, clients.NewCircuitBreaker("supabase"))
		if err != nil {
			return nil, err
		}
		app.supabase = sb
		app.store = store.NewSupabase(sb)
	} else {
		slog.Warn("supabase not configured, using in-memory analysis store")
		app.store = store.NewMemory()
	}

	app.svc = analysis.New()

	// The nil check matters: assigning a nil *clients.Supabase directly
	// would give the middleware a non-nil interface holding a nil pointer.
	var verifier api.TokenVerifier
	if app.supabase != nil {
		verifier = app.supabase
	}
	handler := api.NewHandler(app.svc, app.store, verifier, cfg.App, app.supabase != nil)

	app.router = api.NewRouter(handler, api.RouterOptions{
		Logger:      slog.Default(),
		ServiceName: cfg.Telemetry.ServiceName,
		CORSOrigins: cfg.CORS.List(),
		Production:  cfg.App.Environment == "production",
	})

	return app, nil
}
