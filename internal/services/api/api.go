// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"clipscout/internal/platform/config"
	"clipscout/internal/platform/logger"
	phttp "clipscout/internal/platform/net/http"
	"clipscout/internal/platform/net/middleware"
	"clipscout/internal/platform/store"
	analysismod "clipscout/internal/services/analysis/module"
	"clipscout/internal/services/api/meta"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Version is the reported API version
const Version = "0.1.0"

// Options are the API options
type Options struct {
	// Config is the service-scoped view (CLIPSCOUT_API_*); Analysis is the
	// root-scoped ANALYSIS_* view, kept separate so pipeline overrides do
	// not pick up the service prefix
	Config   config.Conf
	Analysis config.Conf
	Store    *store.Store
	Logger   *logger.Logger
}

// Mount wires the middleware stack and all modules onto the given router
func Mount(r phttp.Router, opt Options) error {
	analysis, err := analysismod.New(opt.Analysis, opt.Store)
	if err != nil {
		return err
	}

	r.Use(commonStack(opt)...)

	r.Route("/api/v1", func(api phttp.Router) {
		api.Route("/meta", func(rr phttp.Router) {
			var pg meta.Pinger
			if opt.Store != nil {
				if p, ok := opt.Store.PG.(meta.Pinger); ok {
					pg = p
				}
			}
			meta.Register(rr, meta.Deps{
				ServiceName: "clipscout-api",
				Version:     Version,
				StartedAt:   time.Now(),
				PG:          pg,
			})
		})

		analysis.MountRoutes(api)
	})
	return nil
}

func commonStack(opt Options) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestContext,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		chimw.NoCache,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: opt.Config.MayDuration("SLOW_REQUEST", 2*time.Second),
		}),

		cors.Handler(cors.Options{
			AllowedOrigins: []string{opt.Config.MayString("CORS_ORIGIN", "*")},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}),
		chimw.RedirectSlashes,
		chimw.StripSlashes,
		chimw.Timeout(30 * time.Second),
	}
}
