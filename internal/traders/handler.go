package traders

import (
	"net/http"

	"vt-tradesim/internal/httputil"

	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createTraderRequest struct {
	UserID            string          `json:"user_id" validate:"required"`
	DisplayName       string          `json:"display_name" validate:"required,min=1,max=100"`
	Bio               *string         `json:"bio"`
	SubscriptionPrice decimal.Decimal `json:"subscription_price"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTraderRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	t, err := h.svc.Create(r.Context(), CreateTraderRequest{
		UserID:            req.UserID,
		DisplayName:       req.DisplayName,
		Bio:               req.Bio,
		SubscriptionPrice: req.SubscriptionPrice,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id string) {
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type updateTraderRequest struct {
	DisplayName       *string          `json:"display_name" validate:"omitempty,min=1,max=100"`
	Bio               *string          `json:"bio"`
	SubscriptionPrice *decimal.Decimal `json:"subscription_price"`
	ProfitPercentage  *decimal.Decimal `json:"profit_percentage"`
	WinRate           *decimal.Decimal `json:"win_rate"`
	TotalTrades       *int             `json:"total_trades" validate:"omitempty,gte=0"`
	Followers         *int             `json:"followers" validate:"omitempty,gte=0"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTraderRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	t, err := h.svc.Update(r.Context(), UpdateTraderRequest{
		ID:                id,
		DisplayName:       req.DisplayName,
		Bio:               req.Bio,
		SubscriptionPrice: req.SubscriptionPrice,
		ProfitPercentage:  req.ProfitPercentage,
		WinRate:           req.WinRate,
		TotalTrades:       req.TotalTrades,
		Followers:         req.Followers,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}
