package api

import (
	"net/http"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/handler"
	"github.com/okmeme/okmeme-wallet/internal/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Tron    *handler.TronHandler
	Solana  *handler.SolanaHandler
	Session *handler.SessionHandler
}

// SetupRouter sets up router with handlers. Metrics are served from gatherer.
func SetupRouter(h Handlers, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Tron endpoints
	mux.HandleFunc("/tron/wallet", h.Tron.CreateWallet)
	mux.HandleFunc("/tron/balance", h.Tron.GetBalance)
	mux.HandleFunc("/tron/transfer", h.Tron.Transfer)

	// Solana endpoints
	mux.HandleFunc("/solana/connect", h.Solana.Connect)
	mux.HandleFunc("/solana/balance", h.Solana.GetBalance)
	mux.HandleFunc("/solana/swap", h.Solana.Swap)

	// Session endpoints
	mux.HandleFunc("/session", h.Session.Get)
	mux.HandleFunc("/session/end", h.Session.End)

	return logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs every request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.API.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
