package trading

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

type executeTradeRequest struct {
	UserID     string          `json:"user_id" validate:"required"`
	Symbol     string          `json:"symbol" validate:"required"`
	AssetType  string          `json:"asset_type" validate:"required"`
	TradeType  string          `json:"trade_type" validate:"required,oneof=buy sell"`
	Quantity   decimal.Decimal `json:"quantity"`
	EntryPrice decimal.Decimal `json:"entry_price"`
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeTradeRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	trade, err := h.svc.ExecuteTrade(r.Context(), ExecuteTradeRequest{
		UserID:     req.UserID,
		Symbol:     req.Symbol,
		AssetType:  types.AssetType(req.AssetType),
		Direction:  types.TradeDirection(req.TradeType),
		Quantity:   req.Quantity,
		EntryPrice: req.EntryPrice,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, trade)
}

type closeTradeRequest struct {
	ExitPrice decimal.Decimal `json:"exit_price"`
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request, tradeID string) {
	var req closeTradeRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	trade, err := h.svc.CloseTrade(r.Context(), tradeID, req.ExitPrice)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, trade)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, tradeID string) {
	trade, err := h.svc.Get(r.Context(), tradeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, trade)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "user_id is required"})
		return
	}
	trades, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, trades)
}
