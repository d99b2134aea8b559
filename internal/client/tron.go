package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/crypto"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/log"
	"github.com/okmeme/okmeme-wallet/internal/metrics"
)

const (
	tronGridAPI = "https://api.trongrid.io"

	tronMethodGetAccount = "GetAccount"
)

// TronClient is a client for the TronGrid REST API
type TronClient struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
	metrics *metrics.Metrics
}

// NewTronClient creates a new TronGrid client. An empty baseURL selects the public endpoint.
func NewTronClient(baseURL string, retry RetryPolicy, m *metrics.Metrics) *TronClient {
	if baseURL == "" {
		baseURL = tronGridAPI
	}
	return &TronClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		retry:   retry,
		metrics: m,
	}
}

type accountRecord struct {
	Balance *json.Number `json:"balance"`
}

// accountsResponse is the part of GET /v1/accounts/{address} we need.
// balance arrives as a JSON number, some proxies send it as a string.
// A missing data field is malformed, an empty one means no such account.
type accountsResponse struct {
	Data *[]accountRecord `json:"data"`
}

// GetAccountBalance returns the TRX balance of address in SUN.
func (c *TronClient) GetAccountBalance(ctx context.Context, address string) (uint64, error) {
	if _, err := crypto.DecodeTronAddress(address); err != nil {
		return 0, err
	}

	var sun uint64
	onRetry := func(attempt int, err error) {
		c.metrics.RecordRPCRetry("tron", tronMethodGetAccount)
		log.Client.Warn().
			Err(err).
			Str("address", address).
			Int("attempt", attempt).
			Msg("retrying tron account request")
	}

	err := c.retry.do(ctx, onRetry, func(ctx context.Context) error {
		start := time.Now()
		var err error
		sun, err = c.getAccountBalance(ctx, address)

		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordRPCCall("tron", tronMethodGetAccount, status, time.Since(start).Seconds())
		return err
	})
	if err != nil {
		return 0, err
	}
	return sun, nil
}

func (c *TronClient) getAccountBalance(ctx context.Context, address string) (uint64, error) {
	endpoint := fmt.Sprintf("%s/v1/accounts/%s", c.baseURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errs.Network(err, "failed to get tron account")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, classifyTronStatus(resp.StatusCode, strings.TrimSpace(string(body)), address)
	}

	var accounts accountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return 0, errs.Parse(err, "failed to decode tron account response")
	}

	if accounts.Data == nil {
		return 0, errs.Parse(errors.New("missing data field"), "failed to decode tron account response")
	}
	if len(*accounts.Data) == 0 {
		return 0, errs.NotFound("tron account %s not found", address)
	}

	balance := (*accounts.Data)[0].Balance
	if balance == nil {
		return 0, errs.Parse(errors.New("missing balance field"), "failed to decode tron account response")
	}

	sun, err := strconv.ParseUint(balance.String(), 10, 64)
	if err != nil {
		return 0, errs.Parse(err, "failed to parse tron balance %q", balance.String())
	}
	return sun, nil
}

// classifyTronStatus maps a non-200 TronGrid status onto the error taxonomy.
// Only server errors, timeouts and rate limiting are worth retrying.
func classifyTronStatus(status int, body, address string) error {
	cause := fmt.Errorf("status %d: %s", status, body)
	switch {
	case status >= http.StatusInternalServerError,
		status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout:
		return errs.Network(cause, "failed to get tron account")
	case status == http.StatusNotFound:
		return errs.NotFound("tron account %s not found", address)
	case status == http.StatusBadRequest:
		return &errs.Error{Kind: errs.KindValidation, Msg: "tron api rejected the request", Err: cause}
	default:
		return errs.Parse(cause, "unexpected tron api response")
	}
}
