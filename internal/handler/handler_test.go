package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/crypto"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/model"
	"github.com/okmeme/okmeme-wallet/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSolanaAddress = "So11111111111111111111111111111111111111112"

type fakeBalances struct {
	raw uint64
	err error
}

func (f *fakeBalances) FetchBalance(ctx context.Context, address string, chain model.Chain) (model.Balance, error) {
	if f.err != nil {
		return model.Balance{}, f.err
	}
	return model.Balance{
		Chain:        chain,
		Address:      address,
		RawUnits:     f.raw,
		DisplayValue: decimal.NewFromInt(int64(f.raw)).Shift(-6),
		Unit:         chain.Unit(),
		FetchedAt:    time.Now(),
	}, nil
}

type fixture struct {
	sessions *session.Manager
	balances *fakeBalances
	tron     *TronHandler
	solana   *SolanaHandler
	session  *SessionHandler
}

func newFixture(defaultSolana string) *fixture {
	f := &fixture{
		sessions: session.NewManager(nil),
		balances: &fakeBalances{raw: 2_500_000},
	}
	f.tron = NewTronHandler(f.sessions, f.balances, crypto.SchemeEd25519, nil)
	f.solana = NewSolanaHandler(f.sessions, f.balances, defaultSolana, nil)
	f.session = NewSessionHandler(f.sessions)
	return f
}

func do(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (f *fixture) createTronWallet(t *testing.T) model.GenerateResponse {
	t.Helper()
	rec := do(t, f.tron.CreateWallet, http.MethodPost, "/tron/wallet", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestTronHandler_CreateWallet(t *testing.T) {
	f := newFixture("")
	resp := f.createTronWallet(t)

	assert.NotEmpty(t, resp.SessionID)
	assert.True(t, strings.HasPrefix(resp.Address, "T"), resp.Address)
	assert.Len(t, resp.PublicKey, 64)
	assert.Equal(t, "ed25519", resp.Scheme)
	assert.NotEmpty(t, resp.QR)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestTronHandler_MethodNotAllowed(t *testing.T) {
	f := newFixture("")
	rec := do(t, f.tron.CreateWallet, http.MethodGet, "/tron/wallet", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTronHandler_GetBalance(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	rec := do(t, f.tron.GetBalance, http.MethodGet, "/tron/balance?sessionId="+wallet.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var bal model.Balance
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bal))
	assert.Equal(t, wallet.Address, bal.Address)
	assert.Equal(t, uint64(2_500_000), bal.RawUnits)
	assert.Equal(t, "2.5", bal.DisplayValue.String())
}

func TestTronHandler_GetBalanceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errs.Kind
	}{
		{"network", errs.Network(context.DeadlineExceeded, "failed to get tron account"), http.StatusBadGateway, errs.KindNetwork},
		{"parse", errs.Parse(nil, "failed to decode tron account response"), http.StatusBadGateway, errs.KindParse},
		{"not found", errs.NotFound("tron account not found"), http.StatusNotFound, errs.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("")
			wallet := f.createTronWallet(t)
			f.balances.err = tt.err

			rec := do(t, f.tron.GetBalance, http.MethodGet, "/tron/balance?sessionId="+wallet.SessionID, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, string(tt.code), decodeError(t, rec).Code)
		})
	}
}

func TestTronHandler_GetBalanceUnknownSession(t *testing.T) {
	f := newFixture("")

	rec := do(t, f.tron.GetBalance, http.MethodGet, "/tron/balance?sessionId=nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.tron.GetBalance, http.MethodGet, "/tron/balance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTronHandler_Transfer(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	rec := do(t, f.tron.Transfer, http.MethodPost, "/tron/transfer", model.TransferRequest{
		SessionID: wallet.SessionID,
		Recipient: "TValidAddr...",
		Amount:    "1.5",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var intent model.TransferIntent
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&intent))
	assert.Equal(t, "TValidAddr...", intent.Recipient)
	assert.Equal(t, uint64(1_500_000), intent.AmountRaw)
	assert.Equal(t, "TRX", intent.Unit)
}

func TestTronHandler_TransferInvalid(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	for _, req := range []model.TransferRequest{
		{SessionID: wallet.SessionID, Recipient: "", Amount: "1.0"},
		{SessionID: wallet.SessionID, Recipient: "TValidAddr...", Amount: "-1"},
	} {
		rec := do(t, f.tron.Transfer, http.MethodPost, "/tron/transfer", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errs.KindValidation), decodeError(t, rec).Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/tron/transfer", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	f.tron.Transfer(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolanaHandler_ConnectAndBalance(t *testing.T) {
	f := newFixture("")
	rec := do(t, f.solana.Connect, http.MethodPost, "/solana/connect", model.ConnectRequest{Address: testSolanaAddress})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var conn model.ConnectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))
	assert.Equal(t, testSolanaAddress, conn.Address)
	assert.NotEmpty(t, conn.QR)

	rec = do(t, f.solana.GetBalance, http.MethodGet, "/solana/balance?sessionId="+conn.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var bal model.Balance
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bal))
	assert.Equal(t, model.ChainSolana, bal.Chain)
	assert.Equal(t, "SOL", bal.Unit)
}

func TestSolanaHandler_ConnectDefaultAddress(t *testing.T) {
	f := newFixture(testSolanaAddress)

	req := httptest.NewRequest(http.MethodPost, "/solana/connect", http.NoBody)
	rec := httptest.NewRecorder()
	f.solana.Connect(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var conn model.ConnectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))
	assert.Equal(t, testSolanaAddress, conn.Address)
}

func TestSolanaHandler_ConnectNoAddress(t *testing.T) {
	f := newFixture("")

	rec := do(t, f.solana.Connect, http.MethodPost, "/solana/connect", model.ConnectRequest{Address: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.sessions.Len())
}

func TestSolanaHandler_Swap(t *testing.T) {
	f := newFixture(testSolanaAddress)
	rec := do(t, f.solana.Connect, http.MethodPost, "/solana/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var conn model.ConnectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))

	rec = do(t, f.solana.Swap, http.MethodPost, "/solana/swap", model.SwapRequest{
		SessionID: conn.SessionID,
		FromToken: "SOL",
		ToToken:   "USDC",
		Amount:    "0.25",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var intent model.SwapIntent
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&intent))
	assert.Equal(t, "SOL", intent.FromToken)
	assert.Equal(t, "USDC", intent.ToToken)
	assert.Equal(t, "0.25", intent.AmountDisplay.String())
}

func TestSolanaHandler_SwapWrongChain(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	rec := do(t, f.solana.Swap, http.MethodPost, "/solana/swap", model.SwapRequest{
		SessionID: wallet.SessionID,
		FromToken: "SOL",
		ToToken:   "USDC",
		Amount:    "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.solana.GetBalance, http.MethodGet, "/solana/balance?sessionId="+wallet.SessionID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_GetAndEnd(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	rec := do(t, f.tron.GetBalance, http.MethodGet, "/tron/balance?sessionId="+wallet.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, f.session.Get, http.MethodGet, "/session?sessionId="+wallet.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var info model.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, model.ChainTron, info.Chain)
	assert.Equal(t, "keypair_created", info.State)
	assert.Equal(t, wallet.Address, info.Address)
	require.NotNil(t, info.Balance)
	assert.Equal(t, uint64(2_500_000), info.Balance.RawUnits)

	rec = do(t, f.session.End, http.MethodPost, "/session/end", model.EndSessionRequest{SessionID: wallet.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.sessions.Len())

	rec = do(t, f.session.End, http.MethodPost, "/session/end", model.EndSessionRequest{SessionID: wallet.SessionID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errs.KindNotFound), decodeError(t, rec).Code)

	rec = do(t, f.tron.Transfer, http.MethodPost, "/tron/transfer", model.TransferRequest{
		SessionID: wallet.SessionID,
		Recipient: "TValidAddr...",
		Amount:    "1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errs.KindValidation))
	assert.Equal(t, http.StatusNotFound, statusFor(errs.KindNotFound))
	assert.Equal(t, http.StatusBadGateway, statusFor(errs.KindNetwork))
	assert.Equal(t, http.StatusBadGateway, statusFor(errs.KindParse))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errs.KindFatalEntropy))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

func TestWriteError_HidesUnclassified(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	writeError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal error", resp.Error)
	assert.Empty(t, resp.Code)
}

func TestTronHandler_CreateWalletFetchesBalance(t *testing.T) {
	f := newFixture("")
	resp := f.createTronWallet(t)

	require.NotNil(t, resp.Balance)
	assert.Equal(t, resp.Address, resp.Balance.Address)
	assert.Equal(t, uint64(2_500_000), resp.Balance.RawUnits)
}

func TestTronHandler_CreateWalletBalanceFailureIsNotFatal(t *testing.T) {
	f := newFixture("")
	f.balances.err = errs.Network(context.DeadlineExceeded, "failed to get tron account")

	resp := f.createTronWallet(t)
	assert.Nil(t, resp.Balance)
	assert.NotEmpty(t, resp.Address)

	rec := do(t, f.session.Get, http.MethodGet, "/session?sessionId="+resp.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info model.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "keypair_created", info.State)
	assert.Nil(t, info.Balance)
}

func TestSolanaHandler_ConnectFetchesBalance(t *testing.T) {
	f := newFixture("")
	rec := do(t, f.solana.Connect, http.MethodPost, "/solana/connect", model.ConnectRequest{Address: testSolanaAddress})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var conn model.ConnectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))
	require.NotNil(t, conn.Balance)
	assert.Equal(t, model.ChainSolana, conn.Balance.Chain)

	f.balances.err = errs.NotFound("no account")
	rec = do(t, f.solana.Connect, http.MethodPost, "/solana/connect", model.ConnectRequest{Address: testSolanaAddress})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	conn = model.ConnectResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))
	assert.Nil(t, conn.Balance)
	assert.Equal(t, 2, f.sessions.Len())
}

func TestHandlers_RejectHugeAmounts(t *testing.T) {
	f := newFixture(testSolanaAddress)
	wallet := f.createTronWallet(t)

	rec := do(t, f.solana.Connect, http.MethodPost, "/solana/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var conn model.ConnectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conn))

	for _, amount := range []string{"1e20000000", "1e-20000000"} {
		start := time.Now()

		rec = do(t, f.tron.Transfer, http.MethodPost, "/tron/transfer", model.TransferRequest{
			SessionID: wallet.SessionID,
			Recipient: "TValidAddr...",
			Amount:    amount,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Less(t, rec.Body.Len(), 512)

		rec = do(t, f.solana.Swap, http.MethodPost, "/solana/swap", model.SwapRequest{
			SessionID: conn.SessionID,
			FromToken: "SOL",
			ToToken:   "USDC",
			Amount:    amount,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Less(t, rec.Body.Len(), 512)

		assert.Less(t, time.Since(start), time.Second, amount)
	}
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	f := newFixture("")
	wallet := f.createTronWallet(t)

	body := `{"sessionId":"` + wallet.SessionID + `","recipient":"` + strings.Repeat("T", maxBodyBytes) + `","amount":"1"}`
	req := httptest.NewRequest(http.MethodPost, "/tron/transfer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.tron.Transfer(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(errs.KindValidation), decodeError(t, rec).Code)
}
