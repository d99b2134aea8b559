// Package balance fetches and normalizes native coin balances.
package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/common"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a fetch when the caller supplies none.
const DefaultTimeout = 5 * time.Second

// RawFetcher returns the raw unit balance of an address on one chain.
type RawFetcher interface {
	RawBalance(ctx context.Context, address string) (uint64, error)
}

// RawFetcherFunc adapts a function to RawFetcher.
type RawFetcherFunc func(ctx context.Context, address string) (uint64, error)

func (f RawFetcherFunc) RawBalance(ctx context.Context, address string) (uint64, error) {
	return f(ctx, address)
}

// Query dispatches balance requests to per-chain fetchers.
type Query struct {
	fetchers map[model.Chain]RawFetcher
	timeout  time.Duration
	now      func() time.Time
}

// NewQuery creates a Query. A non-positive timeout selects DefaultTimeout.
func NewQuery(timeout time.Duration, fetchers map[model.Chain]RawFetcher) *Query {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Query{
		fetchers: fetchers,
		timeout:  timeout,
		now:      time.Now,
	}
}

// FetchBalance fetches the balance of address on chain, bounded by the query timeout.
// It runs as a Task and waits for it. The result is never cached.
func (q *Query) FetchBalance(ctx context.Context, address string, chain model.Chain) (model.Balance, error) {
	return q.Start(ctx, address, chain).Wait()
}

func (q *Query) fetch(ctx context.Context, address string, chain model.Chain) (model.Balance, error) {
	fetcher, ok := q.fetchers[chain]
	if !ok {
		return model.Balance{}, errs.Validation("unsupported chain %q", chain)
	}
	if address == "" {
		return model.Balance{}, errs.Validation("address is required")
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	raw, err := fetcher.RawBalance(ctx, address)
	if err != nil {
		return model.Balance{}, fmt.Errorf("failed to fetch %s balance: %w", chain, err)
	}

	return Normalize(chain, address, raw, q.now()), nil
}

// Normalize converts raw units to a display balance.
func Normalize(chain model.Chain, address string, raw uint64, at time.Time) model.Balance {
	var display decimal.Decimal
	switch chain {
	case model.ChainTron:
		display = common.SUNToTRX(raw)
	case model.ChainSolana:
		display = common.LamportsToSOL(raw)
	}
	return model.Balance{
		Chain:        chain,
		Address:      address,
		RawUnits:     raw,
		DisplayValue: display,
		Unit:         chain.Unit(),
		FetchedAt:    at,
	}
}
