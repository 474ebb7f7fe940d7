package signals

import (
	"net/http"
	"time"

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

type createSignalRequest struct {
	TraderID    string           `json:"trader_id" validate:"required"`
	Symbol      string           `json:"symbol" validate:"required"`
	AssetType   string           `json:"asset_type" validate:"required"`
	SignalType  string           `json:"signal_type" validate:"required,oneof=buy sell"`
	EntryPrice  decimal.Decimal  `json:"entry_price"`
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
	Description *string          `json:"description"`
	ExpiresAt   *time.Time       `json:"expires_at"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSignalRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	sig, err := h.svc.Create(r.Context(), CreateSignalRequest{
		TraderID:    req.TraderID,
		Symbol:      req.Symbol,
		AssetType:   types.AssetType(req.AssetType),
		SignalType:  types.SignalType(req.SignalType),
		EntryPrice:  req.EntryPrice,
		TargetPrice: req.TargetPrice,
		StopLoss:    req.StopLoss,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sig)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id string) {
	sig, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sig)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sigs, err := h.svc.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sigs)
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	sigs, err := h.svc.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sigs)
}

type updateSignalRequest struct {
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
	ExpiresAt   *time.Time       `json:"expires_at"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateSignalRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	sig, err := h.svc.Update(r.Context(), UpdateSignalRequest{
		ID:          id,
		TargetPrice: req.TargetPrice,
		StopLoss:    req.StopLoss,
		Description: req.Description,
		IsActive:    req.IsActive,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sig)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
