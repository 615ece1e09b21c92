package handlers

import (
	"errors"
	"net/http"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
	"market-dispatch/internal/logx"
)

// OrderHandler serves HTTP endpoints for orders: the read side plus the
// admin-side dispatch and lifecycle triggers.
type OrderHandler struct {
	orders    orderReader
	dispatch  dispatchUsecase
	lifecycle lifecycleUsecase
	logger    logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, orders orderReader, dispatch dispatchUsecase, lifecycle lifecycleUsecase) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		dispatch:  dispatch,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Get handles GET /order/{orderID}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	o, err := h.orders.GetByID(ctx, orderID)
	switch {
	case err != nil:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	case o == nil:
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeJSON(h.logger, w, r, http.StatusOK, orderToDTO(o))
	}
}

// Dispatch handles POST /order/{orderID}/dispatch, the manual matcher
// trigger. A no-op outcome (flag off, already assigned, no candidates)
// still answers 200: the request was processed, dispatch just had nothing
// to do.
func (h *OrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	err = h.dispatch.MaybeDispatch(r.Context(), orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Action handles POST /order/{orderID}/action with {"action": "..."}.
func (h *OrderHandler) Action(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	var req actionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.lifecycle.ApplyAction(r.Context(), orderID, domain.Action(req.Action))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToDTO(o))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown action")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "illegal transition")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Cancel handles POST /order/{orderID}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	err = h.lifecycle.Cancel(r.Context(), orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "cancelled"})
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "order is not cancellable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Complete handles POST /order/{orderID}/complete.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.lifecycle.Complete(r.Context(), orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToDTO(o))
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "order is not completable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
