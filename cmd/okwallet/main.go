// @title        okmeme wallet API
// @version      1.0
// @description  Local Tron wallet and remote Solana wallet sessions.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/okmeme/okmeme-wallet/docs"
	"github.com/okmeme/okmeme-wallet/internal/api"
	"github.com/okmeme/okmeme-wallet/internal/balance"
	"github.com/okmeme/okmeme-wallet/internal/client"
	"github.com/okmeme/okmeme-wallet/internal/config"
	"github.com/okmeme/okmeme-wallet/internal/crypto"
	"github.com/okmeme/okmeme-wallet/internal/handler"
	"github.com/okmeme/okmeme-wallet/internal/log"
	"github.com/okmeme/okmeme-wallet/internal/metrics"
	"github.com/okmeme/okmeme-wallet/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg := config.Get()
	log.Init(cfg.LogLevel, cfg.LogFormat)

	scheme, err := crypto.ParseScheme(cfg.TronKeyScheme)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRON_KEY_SCHEME")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	retry := client.RetryPolicy{Retries: cfg.FetchRetries, Backoff: cfg.RetryBackoff}
	tronClient := client.NewTronClient(config.GetTronAPIURL(), retry, m)
	solanaClient := client.NewSolanaClient(client.NewRPCClient(config.GetSolanaRPCURL()), retry, m)
	balances := balance.NewChainQuery(cfg.FetchTimeout, tronClient, solanaClient)

	sessions := session.NewManager(m)
	router := api.SetupRouter(api.Handlers{
		Tron:    handler.NewTronHandler(sessions, balances, scheme, m),
		Solana:  handler.NewSolanaHandler(sessions, balances, cfg.SolanaWalletAddress, m),
		Session: handler.NewSessionHandler(sessions),
	}, registry)

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("tron_api", cfg.TronAPIURL).
			Str("solana_rpc", cfg.SolanaRPCURL).
			Str("key_scheme", string(scheme)).
			Msg("starting server")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown server gracefully")
		}
		log.Info().Int("sessions_ended", sessions.EndAll()).Msg("server shutdown complete")
	}
}
