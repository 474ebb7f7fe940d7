package wallets

import (
	"net/http"

	"vt-tradesim/internal/httputil"
	"vt-tradesim/internal/types"

	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type fundWalletRequest struct {
	UserID            string          `json:"user_id" validate:"required"`
	Currency          string          `json:"currency" validate:"required,min=3,max=10"`
	Amount            decimal.Decimal `json:"amount"`
	ExternalReference *string         `json:"external_reference"`
}

func (h *Handler) Fund(w http.ResponseWriter, r *http.Request) {
	var req fundWalletRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	wallet, err := h.svc.Fund(r.Context(), FundRequest{
		UserID:            req.UserID,
		Currency:          req.Currency,
		Amount:            req.Amount,
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wallet)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "user_id is required"})
		return
	}
	out, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type createTransactionRequest struct {
	UserID      string          `json:"user_id" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"required,min=3,max=10"`
	Description *string         `json:"description"`
	ReferenceID *string         `json:"reference_id"`
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	txn, err := h.svc.CreateTransaction(r.Context(), CreateTransactionRequest{
		UserID:      req.UserID,
		Type:        types.TransactionType(req.Type),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, txn)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "user_id is required"})
		return
	}
	out, err := h.svc.ListTransactions(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
