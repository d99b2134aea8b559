package handler

import (
	"net/http"

	"github.com/okmeme/okmeme-wallet/internal/model"
	"github.com/okmeme/okmeme-wallet/internal/session"
)

// SessionHandler serves chain independent session endpoints.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Get handles GET /session
// @Summary      Get session
// @Description  Returns the state, address and last fetched balance of a session
// @Tags         session
// @Produce      json
// @Param        sessionId  query     string  true  "Session ID"
// @Success      200        {object}  model.SessionResponse
// @Failure      404        {object}  model.ErrorResponse
// @Router       /session [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var resp model.SessionResponse
	err = h.sessions.Do(id, func(s *session.Session) error {
		resp = model.SessionResponse{
			SessionID: s.ID,
			Chain:     s.Chain,
			State:     s.State().String(),
			Address:   s.Address(),
		}
		if bal, ok := s.Balance(); ok {
			resp.Balance = &bal
		}
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// End handles POST /session/end
// @Summary      End session
// @Description  Wipes the session key material and forgets the session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.EndSessionRequest  true  "Session"
// @Success      200      {object}  model.EndSessionResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /session/end [post]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EndSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.sessions.End(req.SessionID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.EndSessionResponse{
		Success: true,
		Message: "Session ended",
	})
}

// refreshBalance fetches and stores the balance of the session given by
// the sessionId query parameter. The session must belong to chain.
func refreshBalance(w http.ResponseWriter, r *http.Request, sessions *session.Manager, balances session.BalanceFetcher, chain model.Chain) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var bal model.Balance
	err = sessions.Do(id, func(s *session.Session) error {
		if err := s.RequireChain(chain); err != nil {
			return err
		}
		var err error
		bal, err = s.RefreshBalance(r.Context(), balances)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bal)
}
