package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bank-accounts/internal/domain"
	"bank-accounts/internal/errors"
	"bank-accounts/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type TransactionResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// MutationResponse confirms a deposit or withdrawal: the recorded
// transaction plus the balance it produced.
type MutationResponse struct {
	AccountNumber string              `json:"account_number"`
	Balance       string              `json:"balance"`
	Transaction   TransactionResponse `json:"transaction"`
}

type HistoryResponse struct {
	AccountNumber string                `json:"account_number"`
	Transactions  []TransactionResponse `json:"transactions"`
}

type TransferRequest struct {
	SourceAccountNumber      string `json:"source_account_number"`
	DestinationAccountNumber string `json:"destination_account_number"`
	Amount                   string `json:"amount"`
}

type TransferResponse struct {
	SourceAccountNumber      string `json:"source_account_number"`
	DestinationAccountNumber string `json:"destination_account_number"`
	SourceBalance            string `json:"source_balance"`
	DestinationBalance       string `json:"destination_balance"`
}

func newTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		Kind:      string(tx.Kind),
		Amount:    tx.Amount.StringFixed(domain.CurrencyScale),
		Timestamp: tx.Timestamp.Format(time.RFC3339Nano),
	}
}

func newMutationResponse(account *domain.Account) MutationResponse {
	history := account.History()
	return MutationResponse{
		AccountNumber: account.Number(),
		Balance:       account.Balance().StringFixed(domain.CurrencyScale),
		Transaction:   newTransactionResponse(history[len(history)-1]),
	}
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.transactionService.Deposit)
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.transactionService.Withdraw)
}

func (h *TransactionHandler) applyAmount(w http.ResponseWriter, r *http.Request, op func(string, decimal.Decimal) (*domain.Account, error)) {
	vars := mux.Vars(r)
	accountNumber := vars["account_number"]

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	account, err := op(accountNumber, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newMutationResponse(account))
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountNumber := vars["account_number"]

	history, err := h.transactionService.History(accountNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	transactions := make([]TransactionResponse, 0, len(history))
	for _, tx := range history {
		transactions = append(transactions, newTransactionResponse(tx))
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		AccountNumber: accountNumber,
		Transactions:  transactions,
	})
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.transactionService.Transfer(&service.TransferRequest{
		SourceAccountNumber:      req.SourceAccountNumber,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransferResponse{
		SourceAccountNumber:      req.SourceAccountNumber,
		DestinationAccountNumber: req.DestinationAccountNumber,
		SourceBalance:            result.SourceBalance.StringFixed(domain.CurrencyScale),
		DestinationBalance:       result.DestinationBalance.StringFixed(domain.CurrencyScale),
	})
}
