package handler

import (
	"errors"
	"net/http"

	"github.com/KhashayarRezaei/bookverse/internal/auth"
	"github.com/KhashayarRezaei/bookverse/internal/model"
	"github.com/KhashayarRezaei/bookverse/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and customer order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthenticated.", h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeOrderRequest(r, &req); err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			writeServiceError(w, verrs, h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), principal.ID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger.With().Int64("user_id", principal.ID).Logger())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/orders requests, returning the caller's orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthenticated.", h.logger)
		return
	}

	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), model.OrderFilter{
		UserID: &principal.ID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, model.OrderListResponse{Data: orders, Limit: limit, Offset: offset})
}

// GetByID handles GET /api/orders/{id} requests. Orders of other users are reported as missing.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthenticated.", h.logger)
		return
	}

	orderID, err := orderIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	order, err := h.service.GetUserOrder(r.Context(), principal.ID, orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DataResponse{Data: order})
}
