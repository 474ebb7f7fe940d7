package education

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

type createContentRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Category    string `json:"category" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContentRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	c, err := h.svc.Create(r.Context(), req.Title, req.Content, req.Category, published)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") == "true"
	out, err := h.svc.List(r.Context(), publishedOnly)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type updateContentRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"is_published"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateContentRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	c, err := h.svc.Update(r.Context(), UpdateContentRequest{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}
