// Package session holds per-wallet state between API calls.
package session

import (
	"context"
	"encoding/hex"

	"github.com/okmeme/okmeme-wallet/internal/crypto"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/model"
)

// State is a session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateKeypairCreated
	StateRemoteConnected
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateKeypairCreated:
		return "keypair_created"
	case StateRemoteConnected:
		return "remote_connected"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// BalanceFetcher fetches a balance snapshot. *balance.Query satisfies it.
type BalanceFetcher interface {
	FetchBalance(ctx context.Context, address string, chain model.Chain) (model.Balance, error)
}

// Session is one wallet tab: a locally generated Tron keypair or a
// connected remote Solana wallet. It is not safe for concurrent use;
// Manager serializes access.
type Session struct {
	ID    string
	Chain model.Chain

	state   State
	keypair *crypto.Keypair
	address string
	balance *model.Balance
}

// New returns an uninitialized session.
func New(id string, chain model.Chain) *Session {
	return &Session{ID: id, Chain: chain}
}

// AttachKeypair moves a Tron session to KeypairCreated.
func (s *Session) AttachKeypair(kp *crypto.Keypair, address string) error {
	if s.Chain != model.ChainTron {
		return errs.Validation("%s sessions cannot hold a local keypair", s.Chain)
	}
	if s.state != StateUninitialized {
		return errs.Validation("session is %s, a wallet was already created", s.state)
	}
	if kp == nil || address == "" {
		return errs.Validation("keypair and address are required")
	}
	s.keypair = kp
	s.address = address
	s.state = StateKeypairCreated
	return nil
}

// Connect moves a Solana session to RemoteConnected.
func (s *Session) Connect(address string) error {
	if s.Chain != model.ChainSolana {
		return errs.Validation("%s sessions cannot connect a remote wallet", s.Chain)
	}
	if s.state != StateUninitialized {
		return errs.Validation("session is %s, a wallet is already connected", s.state)
	}
	if address == "" {
		return errs.Validation("address is required")
	}
	s.address = address
	s.state = StateRemoteConnected
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Address returns the session address, empty before initialization.
func (s *Session) Address() string {
	return s.address
}

// PublicKeyHex returns the hex public key of a local keypair, or "".
func (s *Session) PublicKeyHex() string {
	if s.keypair == nil {
		return ""
	}
	return hex.EncodeToString(s.keypair.PublicKey)
}

// Balance returns the last successfully fetched balance.
func (s *Session) Balance() (model.Balance, bool) {
	if s.balance == nil {
		return model.Balance{}, false
	}
	return *s.balance, true
}

// RequireChain fails if the session belongs to another chain.
func (s *Session) RequireChain(chain model.Chain) error {
	if s.Chain != chain {
		return errs.Validation("session %s is a %s session", s.ID, s.Chain)
	}
	return nil
}

// RequireReady fails unless a wallet has been created or connected.
func (s *Session) RequireReady() error {
	switch s.state {
	case StateKeypairCreated, StateRemoteConnected:
		return nil
	case StateUninitialized:
		if s.Chain == model.ChainSolana {
			return errs.Validation("please connect a Solana wallet first")
		}
		return errs.Validation("please create a Tron wallet first")
	default:
		return errs.Validation("session has ended")
	}
}

// RefreshBalance fetches the balance and stores it. On failure the
// previously stored balance is left untouched.
func (s *Session) RefreshBalance(ctx context.Context, f BalanceFetcher) (model.Balance, error) {
	if err := s.RequireReady(); err != nil {
		return model.Balance{}, err
	}

	bal, err := f.FetchBalance(ctx, s.address, s.Chain)
	if err != nil {
		return model.Balance{}, err
	}
	s.balance = &bal
	return bal, nil
}

// End wipes the private key and discards all state.
func (s *Session) End() {
	if s.keypair != nil {
		s.keypair.Zero()
		s.keypair = nil
	}
	s.address = ""
	s.balance = nil
	s.state = StateEnded
}
