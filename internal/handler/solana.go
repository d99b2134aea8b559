package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/okmeme/okmeme-wallet/internal/common"
	"github.com/okmeme/okmeme-wallet/internal/metrics"
	"github.com/okmeme/okmeme-wallet/internal/model"
	"github.com/okmeme/okmeme-wallet/internal/session"
	"github.com/okmeme/okmeme-wallet/solana"
)

// SolanaHandler serves the remote Solana wallet endpoints.
type SolanaHandler struct {
	sessions       *session.Manager
	balances       session.BalanceFetcher
	defaultAddress string
	metrics        *metrics.Metrics
}

// NewSolanaHandler creates a new SolanaHandler. defaultAddress is used by
// Connect when the request names no address.
func NewSolanaHandler(sessions *session.Manager, balances session.BalanceFetcher, defaultAddress string, m *metrics.Metrics) *SolanaHandler {
	return &SolanaHandler{
		sessions:       sessions,
		balances:       balances,
		defaultAddress: defaultAddress,
		metrics:        m,
	}
}

// Connect handles POST /solana/connect
// @Summary      Connect Solana wallet
// @Description  Opens a session for the address reported by an external wallet.
// @Description  The balance is fetched once; a failed fetch leaves it out of the response
// @Tags         solana
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  false  "Wallet address"
// @Success      200      {object}  model.ConnectResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /solana/connect [post]
func (h *SolanaHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ConnectRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, err)
		return
	}

	reported := req.Address
	if reported == "" {
		reported = h.defaultAddress
	}
	address, err := solana.Connect(reported)
	if err != nil {
		writeError(w, r, err)
		return
	}

	qr, err := common.AddressQRCode(address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.sessions.Open(model.ChainSolana, func(s *session.Session) error {
		return s.Connect(address)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		SessionID: id,
		Address:   address,
		QR:        qr,
		Balance:   initialBalance(r, h.sessions, h.balances, id),
	})
}

// GetBalance handles GET /solana/balance
// @Summary      Get SOL balance
// @Description  Fetches the SOL balance of the connected wallet at confirmed commitment
// @Tags         solana
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200        {object}  model.Balance
// @Failure      400        {object}  model.ErrorResponse
// @Failure      404        {object}  model.ErrorResponse
// @Failure      502        {object}  model.ErrorResponse
// @Router       /solana/balance [get]
func (h *SolanaHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	refreshBalance(w, r, h.sessions, h.balances, model.ChainSolana)
}

// Swap handles POST /solana/swap
// @Summary      Build token swap
// @Description  Validates a swap request. No route or quote is resolved
// @Tags         solana
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwapRequest  true  "Swap data"
// @Success      200      {object}  model.SwapIntent
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /solana/swap [post]
func (h *SolanaHandler) Swap(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SwapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var intent *model.SwapIntent
	err := h.sessions.Do(req.SessionID, func(s *session.Session) error {
		if err := s.RequireChain(model.ChainSolana); err != nil {
			return err
		}
		if err := s.RequireReady(); err != nil {
			return err
		}
		var err error
		intent, err = solana.BuildSwapIntent(req.FromToken, req.ToToken, req.Amount)
		return err
	})
	h.metrics.RecordIntent("swap", intentResult(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}
