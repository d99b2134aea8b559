package client

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/log"
	"github.com/okmeme/okmeme-wallet/internal/metrics"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const solanaMethodGetBalance = "getBalance"

// RPCClient is the subset of the Solana RPC API we need.
// *rpc.Client satisfies it; tests substitute a mock.
type RPCClient interface {
	GetBalance(
		ctx context.Context,
		account solana.PublicKey,
		commitment rpc.CommitmentType,
	) (*rpc.GetBalanceResult, error)
}

// NewRPCClient creates a JSON-RPC client for the given endpoint.
func NewRPCClient(rpcURL string) RPCClient {
	return rpc.New(rpcURL)
}

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpc     RPCClient
	retry   RetryPolicy
	metrics *metrics.Metrics
}

// NewSolanaClient creates a new Solana client.
func NewSolanaClient(rpcClient RPCClient, retry RetryPolicy, m *metrics.Metrics) *SolanaClient {
	return &SolanaClient{
		rpc:     rpcClient,
		retry:   retry,
		metrics: m,
	}
}

// GetBalance gets the SOL balance of address in lamports at confirmed commitment.
func (c *SolanaClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, errs.Validation("invalid Solana address %q", address)
	}

	var lamports uint64
	onRetry := func(attempt int, err error) {
		c.metrics.RecordRPCRetry("solana", solanaMethodGetBalance)
		log.Client.Warn().
			Err(err).
			Str("address", address).
			Int("attempt", attempt).
			Msg("retrying solana getBalance")
	}

	err = c.retry.do(ctx, onRetry, func(ctx context.Context) error {
		start := time.Now()
		res, err := c.rpc.GetBalance(ctx, owner, rpc.CommitmentConfirmed)

		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordRPCCall("solana", solanaMethodGetBalance, status, time.Since(start).Seconds())

		if err != nil {
			return classifySolanaError(err)
		}
		if res == nil {
			return errs.Parse(errors.New("empty result"), "failed to get SOL balance")
		}
		lamports = res.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return lamports, nil
}

// classifySolanaError maps an RPC failure onto the error taxonomy.
// Transport failures and JSON-RPC error objects are network errors;
// anything else means the response could not be decoded.
func classifySolanaError(err error) error {
	var (
		netErr net.Error
		urlErr *url.Error
		rpcErr *jsonrpc.RPCError
	)
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr),
		errors.As(err, &urlErr),
		errors.As(err, &rpcErr):
		return errs.Network(err, "failed to get SOL balance")
	default:
		return errs.Parse(err, "failed to get SOL balance")
	}
}
