package subscriptions

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

type createSubscriptionRequest struct {
	SubscriberID string          `json:"subscriber_id" validate:"required"`
	TraderID     string          `json:"trader_id" validate:"required"`
	PricePaid    decimal.Decimal `json:"price_paid"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	sub, err := h.svc.Create(r.Context(), req.SubscriberID, req.TraderID, req.PricePaid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) ListBySubscriber(w http.ResponseWriter, r *http.Request) {
	subscriberID := r.URL.Query().Get("subscriber_id")
	if subscriberID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "subscriber_id is required"})
		return
	}
	subs, err := h.svc.ListBySubscriber(r.Context(), subscriberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subs)
}
