package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bank-accounts/internal/repository"
	"bank-accounts/internal/service"
)

type fixture struct {
	accounts     *AccountHandler
	transactions *TransactionHandler
	accountSvc   *service.AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(logger)
	accountSvc := service.NewAccountService(store, logger)
	transactionSvc := service.NewTransactionService(store, logger)
	return &fixture{
		accounts:     NewAccountHandler(accountSvc),
		transactions: NewTransactionHandler(transactionSvc),
		accountSvc:   accountSvc,
	}
}

func (f *fixture) createAccount(t *testing.T, number, balance string) {
	t.Helper()
	_, err := f.accountSvc.CreateAccount(number, decimal.RequireFromString(balance))
	require.NoError(t, err)
}

// doJSON invokes h directly with an optional JSON body and routing vars and
// returns the recorded response.
func doJSON(h http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// decodeEnvelope unwraps the response envelope, filling data when the
// response carried a payload, and returns the error half if present.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) *Error {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *Error          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	if data != nil && envelope.Data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Error
}

func requireErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rr.Code)
	wireErr := decodeEnvelope(t, rr, nil)
	require.NotNil(t, wireErr)
	require.Equal(t, code, wireErr.Code)
}
