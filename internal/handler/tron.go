package handler

import (
	"encoding/hex"
	"net/http"

	"github.com/okmeme/okmeme-wallet/internal/crypto"
	"github.com/okmeme/okmeme-wallet/internal/metrics"
	"github.com/okmeme/okmeme-wallet/internal/model"
	"github.com/okmeme/okmeme-wallet/internal/session"
	"github.com/okmeme/okmeme-wallet/tron"
)

// TronHandler serves the local Tron wallet endpoints.
type TronHandler struct {
	sessions *session.Manager
	balances session.BalanceFetcher
	scheme   crypto.Scheme
	metrics  *metrics.Metrics
}

// NewTronHandler creates a new TronHandler.
func NewTronHandler(sessions *session.Manager, balances session.BalanceFetcher, scheme crypto.Scheme, m *metrics.Metrics) *TronHandler {
	return &TronHandler{
		sessions: sessions,
		balances: balances,
		scheme:   scheme,
		metrics:  m,
	}
}

// CreateWallet handles POST /tron/wallet
// @Summary      Create Tron wallet
// @Description  Generates a keypair in memory, derives its Tron address and opens a session.
// @Description  The balance is fetched once; a failed fetch leaves it out of the response
// @Tags         tron
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /tron/wallet [post]
func (h *TronHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	wallet, err := tron.GenerateWallet(h.scheme)
	if err != nil {
		h.metrics.RecordKeypair(string(h.scheme), "error")
		writeError(w, r, err)
		return
	}
	h.metrics.RecordKeypair(string(h.scheme), "success")

	publicKey := hex.EncodeToString(wallet.Keypair.PublicKey)
	id, err := h.sessions.Open(model.ChainTron, func(s *session.Session) error {
		return s.AttachKeypair(wallet.Keypair, wallet.Address)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		SessionID: id,
		Address:   wallet.Address,
		PublicKey: publicKey,
		Scheme:    string(h.scheme),
		QR:        wallet.QR,
		Balance:   initialBalance(r, h.sessions, h.balances, id),
	})
}

// GetBalance handles GET /tron/balance
// @Summary      Get TRX balance
// @Description  Fetches the TRX balance of the session wallet from TronGrid
// @Tags         tron
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200        {object}  model.Balance
// @Failure      400        {object}  model.ErrorResponse
// @Failure      404        {object}  model.ErrorResponse
// @Failure      502        {object}  model.ErrorResponse
// @Router       /tron/balance [get]
func (h *TronHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	refreshBalance(w, r, h.sessions, h.balances, model.ChainTron)
}

// Transfer handles POST /tron/transfer
// @Summary      Build TRX transfer
// @Description  Validates a transfer and scales the amount to SUN. Nothing is signed or broadcast
// @Tags         tron
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer data"
// @Success      200      {object}  model.TransferIntent
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /tron/transfer [post]
func (h *TronHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req model.TransferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var intent *model.TransferIntent
	err := h.sessions.Do(req.SessionID, func(s *session.Session) error {
		if err := s.RequireChain(model.ChainTron); err != nil {
			return err
		}
		if err := s.RequireReady(); err != nil {
			return err
		}
		var err error
		intent, err = tron.BuildTransferIntent(req.Recipient, req.Amount, model.ChainTron.ScaleFactor())
		return err
	})
	h.metrics.RecordIntent("transfer", intentResult(err))
	if err != nil {
		writeError(w, r, err)
		return
	}
	intent.Unit = model.ChainTron.Unit()

	writeJSON(w, http.StatusOK, intent)
}
