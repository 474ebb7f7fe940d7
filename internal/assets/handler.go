package assets

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

type createAssetRequest struct {
	Symbol       string          `json:"symbol" validate:"required,min=1,max=10"`
	Name         string          `json:"name" validate:"required"`
	AssetType    string          `json:"asset_type" validate:"required"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.svc.Create(r.Context(), req.Symbol, req.Name, types.AssetType(req.AssetType), req.CurrentPrice)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type updateAssetRequest struct {
	Symbol *string `json:"symbol" validate:"omitempty,min=1,max=10"`
	Name   *string `json:"name"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateAssetRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.svc.Update(r.Context(), UpdateAssetRequest{ID: id, Symbol: req.Symbol, Name: req.Name})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

type updatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request, id string) {
	var req updatePriceRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.svc.UpdatePrice(r.Context(), id, req.Price)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
