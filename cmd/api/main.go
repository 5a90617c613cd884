package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"sedi/internal/adapters/amadeus"
	server "sedi/internal/adapters/http_server"
	"sedi/internal/adapters/observability"
	"sedi/internal/adapters/openai"
	redisad "sedi/internal/adapters/redis"
	"sedi/internal/app"
	"sedi/internal/domain"
	"sedi/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	llm, err := openai.New(openai.Config{APIKey: cfg.OpenAIKey, BaseURL: cfg.OpenAIBase, Model: cfg.OpenAIModel})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OpenAI client")
	}
	provider, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusID, cfg.AmadeusSecret, cfg.AmadeusRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}

	var cache domain.Cache
	var ready func(context.Context) error
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache, ready = rc, rc.Ping
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("discovery cache enabled")
	}

	search := app.NewSearchService(provider, cache, cfg.CacheTTL, cfg.OfferWorkers)
	assistant := app.NewAssistant(app.NewExtractor(llm, nil), search, cfg.AffiliateID, nil)

	// http
	srv := server.New(log.Logger, 60*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{A: assistant, Ready: ready})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
