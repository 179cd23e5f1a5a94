package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/metrics"
	"github.com/reoring/goshape/middleware"
	"github.com/reoring/goshape/registry"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve validation over HTTP",
		Long: `Serves the schemas of the configured document:
  POST /validate/{name}   validate the JSON body
  GET  /schemas           list schema names
  GET  /schemas/{name}    JSON Schema projection
  GET  /metrics           Prometheus metrics
  GET  /healthz           liveness`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(contextOf(cmd))
		},
	}
	cmd.Flags().String("listen", "", "Listen address (default :8080)")
	cmd.Flags().Bool("watch", false, "Reload the schema document when it changes")
	_ = a.v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = a.v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	reg, err := a.openRegistry()
	if err != nil {
		return err
	}
	defer reg.Stop()

	promReg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(promReg)
	reg.OnChange(func([]string) { m.ObserveReload(nil) })
	reg.OnError(m.ObserveReload)
	if a.cfg.Watch {
		if err := reg.WatchFile(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           newRouter(reg, m, promReg, a.logger, a.parseOpt()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info().Str("addr", a.cfg.Listen).Strs("schemas", reg.Names()).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logger.Info().Msg("server stopped")
	return nil
}

func newRouter(reg *registry.Registry, m *metrics.Collector, gatherer prometheus.Gatherer, logger zerolog.Logger, popt goshape.ParseOpt) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/schemas", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]any{"schemas": reg.Names()})
	})
	r.Get("/schemas/{name}", func(w http.ResponseWriter, req *http.Request) {
		s, err := reg.Get(chi.URLParam(req, "name"))
		if err != nil {
			middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		doc, err := s.JSONSchema()
		if err != nil {
			middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		middleware.WriteJSON(w, http.StatusOK, doc)
	})
	r.Post("/validate/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		s, err := reg.Get(name)
		if err != nil {
			middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		validate := middleware.ValidateJSON(s, middleware.Options{
			Name:     name,
			ParseOpt: &popt,
			Logger:   &logger,
			Observe:  m.Observe,
		})
		validate(http.HandlerFunc(writeValid)).ServeHTTP(w, req)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func writeValid(w http.ResponseWriter, req *http.Request) {
	v, _ := middleware.ValueFromContext(req.Context())
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"valid": true, "value": v})
}
