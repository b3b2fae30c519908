package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bank-accounts/internal/domain"
	"bank-accounts/internal/errors"
	"bank-accounts/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type CreateAccountRequest struct {
	AccountNumber  string `json:"account_number"`
	InitialBalance string `json:"initial_balance"`
}

type AccountResponse struct {
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
}

type ListAccountsResponse struct {
	AccountNumbers []string `json:"account_numbers"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.Number(),
		Balance:       account.Balance().StringFixed(domain.CurrencyScale),
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}

	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		writeError(w, errors.NewAppError(errors.NonNumericAmount, "invalid initial_balance format").WithDetails(err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(req.AccountNumber, initialBalance)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountNumber := vars["account_number"]

	account, err := h.accountService.GetAccount(accountNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListAccountsResponse{
		AccountNumbers: h.accountService.ListAccountNumbers(),
	})
}
