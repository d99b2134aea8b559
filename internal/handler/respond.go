package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/log"
	"github.com/okmeme/okmeme-wallet/internal/model"
	"github.com/okmeme/okmeme-wallet/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.API.Error().Err(err).Msg("failed to encode response")
	}
}

// statusFor maps an error kind to an HTTP status.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindNetwork, errs.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err as model.ErrorResponse. Only the message of a
// classified error is shown; unclassified errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	status := statusFor(kind)

	msg := "internal error"
	var e *errs.Error
	if errors.As(err, &e) {
		msg = e.Msg
	}

	event := log.API.Warn()
	if status >= http.StatusInternalServerError {
		event = log.API.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: string(kind)})
}

// maxBodyBytes caps request bodies; every request type is a few short strings.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &errs.Error{Kind: errs.KindValidation, Msg: "invalid request body", Err: err}
	}
	return nil
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func sessionID(r *http.Request) (string, error) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		return "", errs.Validation("sessionId is required")
	}
	return id, nil
}

func intentResult(err error) string {
	if err != nil {
		return string(errs.KindOf(err))
	}
	return "ok"
}

// initialBalance fetches the balance of a freshly opened session. A failure
// is logged and leaves the session without a balance.
func initialBalance(r *http.Request, sessions *session.Manager, balances session.BalanceFetcher, id string) *model.Balance {
	var bal *model.Balance
	err := sessions.Do(id, func(s *session.Session) error {
		b, err := s.RefreshBalance(r.Context(), balances)
		if err != nil {
			return err
		}
		bal = &b
		return nil
	})
	if err != nil {
		log.API.Warn().
			Err(err).
			Str("session", id).
			Msg("initial balance fetch failed")
	}
	return bal
}
