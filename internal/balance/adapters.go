package balance

import (
	"time"

	"github.com/okmeme/okmeme-wallet/internal/client"
	"github.com/okmeme/okmeme-wallet/internal/model"
)

// NewChainQuery wires the TronGrid and Solana RPC clients into a Query.
func NewChainQuery(timeout time.Duration, tron *client.TronClient, sol *client.SolanaClient) *Query {
	return NewQuery(timeout, map[model.Chain]RawFetcher{
		model.ChainTron:   RawFetcherFunc(tron.GetAccountBalance),
		model.ChainSolana: RawFetcherFunc(sol.GetBalance),
	})
}
