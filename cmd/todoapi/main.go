// @title         Todo API
// @version       0.1.0
// @description   Create, read, update and delete todo items

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapi/internal/core/version"
	"todoapi/internal/modkit"
	"todoapi/internal/modkit/repokit"
	"todoapi/internal/modkit/swaggerkit"
	"todoapi/internal/platform/config"
	"todoapi/internal/platform/logger"
	"todoapi/internal/platform/metrics"
	phttp "todoapi/internal/platform/net/http"
	"todoapi/internal/platform/net/middleware"
	"todoapi/internal/platform/seam"
	"todoapi/internal/platform/store"
	"todoapi/internal/services/todos/module"
	"todoapi/internal/services/todos/repo"

	"github.com/go-chi/chi/v5"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Str("date", bi.Date).Msg("todo api starting")

	root := config.New()
	apiCfg := root.Prefix("TODO_API_")

	if dir := apiCfg.MayString("WORKDIR", ""); dir != "" {
		if err := os.Chdir(dir); err != nil {
			l.Fatal().Err(err).Str("dir", dir).Msg("chdir failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConf(root), store.WithLogger(*logger.Named("store")))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, "store", st)
	if err := repokit.WithTx(ctx, st.PG, func(q repokit.Queryer) error {
		return store.EnsureSchema(ctx, q, repo.Schema)
	}); err != nil {
		l.Fatal().Err(err).Msg("schema setup failed")
	}

	opts := []module.Option{
		module.WithProduction(apiCfg.MayEnum("ENV", "development", "development", "production", "test") == "production"),
		module.WithMiddlewares(middleware.Defaults(middleware.Options{
			TrustProxy:  apiCfg.MayBool("TRUST_PROXY", false),
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			HealthPath:  "/health",
			Slow:        time.Duration(apiCfg.MayInt("SLOW_MS", 500)) * time.Millisecond,
		})...),
	}
	mounts := []func(chi.Router){
		func(r chi.Router) { r.Get("/version", version.Handler()) },
	}
	if apiCfg.MayBool("SWAGGER", true) {
		mounts = append(mounts, swaggerkit.Mount("/docs"))
	}
	if apiCfg.MayBool("METRICS", true) {
		m := metrics.NewHTTP("todoapi")
		opts = append(opts, module.WithObserver(m))
		mounts = append(mounts, func(r chi.Router) { r.Handle("/metrics", m.Handler()) })
	}
	if apiCfg.MayBool("PPROF", false) {
		mounts = append(mounts, phttp.MountProfiler("/debug"))
	}
	opts = append(opts, module.WithMounts(mounts...))

	todos, err := module.New(modkit.Deps{Cfg: root, PG: st.PG, Env: seam.NewEnv(seam.ModeUnset)}, opts...)
	if err != nil {
		l.Fatal().Err(err).Msg("todos module failed")
	}

	addr := apiCfg.MayString("ADDR", ":8080")
	if err := todos.StartListening(addr); err != nil {
		l.Fatal().Err(err).Str("addr", addr).Msg("listen failed")
	}
	l.Info().Str("addr", todos.Addr()).Strs("routes", todos.Patterns()).Msg("todo api listening")

	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := todos.StopListening(shutdown); err != nil {
		l.Error().Err(err).Msg("graceful stop failed")
	}
	l.Info().Msg("todo api stopped")
}
