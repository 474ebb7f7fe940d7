package copytrading

import (
	"net/http"

	"vt-tradesim/internal/httputil"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type copyTradeRequest struct {
	SubscriberID string `json:"subscriber_id" validate:"required"`
	TraderID     string `json:"trader_id" validate:"required"`
	SignalID     string `json:"signal_id" validate:"required"`
}

func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	var req copyTradeRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	ct, err := h.svc.Copy(r.Context(), req.SubscriberID, req.TraderID, req.SignalID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ct)
}

func (h *Handler) ListBySubscriber(w http.ResponseWriter, r *http.Request) {
	subscriberID := r.URL.Query().Get("subscriber_id")
	if subscriberID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "subscriber_id is required"})
		return
	}
	out, err := h.svc.ListBySubscriber(r.Context(), subscriberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
