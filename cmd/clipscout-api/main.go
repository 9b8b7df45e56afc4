package main

import (
	"context"

	"clipscout/internal/platform/config"
	"clipscout/internal/platform/logger"
	phttp "clipscout/internal/platform/net/http"
	"clipscout/internal/platform/store"

	"clipscout/internal/services/analysis/repo"
	"clipscout/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CLIPSCOUT_API_*)
	root := config.New()
	apiCfg := root.Prefix("CLIPSCOUT_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// open the platform store; reports are optional, the pipeline itself
	// runs without a database
	var st *store.Store
	if pgCfg.MayBool("ENABLED", true) {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				PG: store.PGConfig{
					Enabled:  true,
					URL:      pgCfg.MustString("DBURL"),
					MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowMs:   pgCfg.MayInt("SLOW_MS", 500),
				},
			},
			store.WithLogger(*l),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()

		// fail fast on an unreachable database
		if err := st.Guard(context.Background()); err != nil {
			l.Panic().Err(err).Msg("store guard failed")
		}
		if pgCfg.MayBool("MIGRATE", true) {
			if err := repo.EnsureSchema(context.Background(), st.PG); err != nil {
				l.Panic().Err(err).Msg("schema setup failed")
			}
		}
	}

	// http server (reads CLIPSCOUT_API_PORT)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:   apiCfg,
		Analysis: root.Prefix("ANALYSIS_"),
		Store:    st,
		Logger:   l,
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
