package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
	"market-dispatch/internal/logx"
)

type stubOrderReader struct {
	getFn func(ctx context.Context, id string) (*domain.Order, error)
}

func (s *stubOrderReader) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.getFn(ctx, id)
}

type stubDispatchUsecase struct {
	err   error
	calls []string
}

func (s *stubDispatchUsecase) MaybeDispatch(_ context.Context, orderID string) error {
	s.calls = append(s.calls, orderID)
	return s.err
}

type stubLifecycleUsecase struct {
	applyFn    func(ctx context.Context, orderID string, action domain.Action) (*domain.Order, error)
	cancelErr  error
	completeFn func(ctx context.Context, orderID string) (*domain.Order, error)
}

func (s *stubLifecycleUsecase) ApplyAction(ctx context.Context, orderID string, action domain.Action) (*domain.Order, error) {
	return s.applyFn(ctx, orderID, action)
}

func (s *stubLifecycleUsecase) Cancel(context.Context, string) error {
	return s.cancelErr
}

func (s *stubLifecycleUsecase) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.completeFn(ctx, orderID)
}

func orderRouter(h *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/order/{orderID}", h.Get)
	r.Post("/order/{orderID}/dispatch", h.Dispatch)
	r.Post("/order/{orderID}/action", h.Action)
	r.Post("/order/{orderID}/cancel", h.Cancel)
	r.Post("/order/{orderID}/complete", h.Complete)
	return r
}

func TestOrderGet(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderReader{
		getFn: func(_ context.Context, id string) (*domain.Order, error) {
			require.Equal(t, "ord-1", id)
			return &domain.Order{
				ID:            "ord-1",
				Status:        domain.OrderCreated,
				PaymentStatus: domain.PaymentPending,
				CreatedAt:     now,
				UpdatedAt:     now,
			}, nil
		},
	}
	h := NewOrderHandler(logx.Nop(), orders, &stubDispatchUsecase{}, &stubLifecycleUsecase{})

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/ord-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":"ord-1"`)
	require.Contains(t, w.Body.String(), `"status":"created"`)
}

func TestOrderGet_NotFound(t *testing.T) {
	t.Parallel()

	orders := &stubOrderReader{
		getFn: func(context.Context, string) (*domain.Order, error) { return nil, nil },
	}
	h := NewOrderHandler(logx.Nop(), orders, &stubDispatchUsecase{}, &stubLifecycleUsecase{})

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/ghost", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderDispatch(t *testing.T) {
	t.Parallel()

	dispatch := &stubDispatchUsecase{}
	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, dispatch, &stubLifecycleUsecase{})

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/dispatch", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"ord-1"}, dispatch.calls)
}

func TestOrderDispatch_NotFound(t *testing.T) {
	t.Parallel()

	dispatch := &stubDispatchUsecase{err: apperr.NotFound}
	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, dispatch, &stubLifecycleUsecase{})

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ghost/dispatch", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderAction(t *testing.T) {
	t.Parallel()

	lc := &stubLifecycleUsecase{
		applyFn: func(_ context.Context, orderID string, action domain.Action) (*domain.Order, error) {
			require.Equal(t, domain.ActionToDelivery, action)
			return &domain.Order{ID: orderID, Status: domain.OrderDelivering}, nil
		},
	}
	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, &stubDispatchUsecase{}, lc)

	body := strings.NewReader(`{"action":"to_delivery"}`)
	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/action", body))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"delivering"`)
}

func TestOrderAction_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown action", apperr.Invalid, http.StatusBadRequest},
		{"missing order", apperr.NotFound, http.StatusNotFound},
		{"illegal transition", apperr.Conflict, http.StatusConflict},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lc := &stubLifecycleUsecase{
				applyFn: func(context.Context, string, domain.Action) (*domain.Order, error) {
					return nil, tc.err
				},
			}
			h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, &stubDispatchUsecase{}, lc)

			body := strings.NewReader(`{"action":"to_delivery"}`)
			w := httptest.NewRecorder()
			orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/action", body))

			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestOrderCancel_Conflict(t *testing.T) {
	t.Parallel()

	lc := &stubLifecycleUsecase{cancelErr: apperr.Conflict}
	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, &stubDispatchUsecase{}, lc)

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/cancel", nil))

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderComplete(t *testing.T) {
	t.Parallel()

	lc := &stubLifecycleUsecase{
		completeFn: func(_ context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{ID: orderID, Status: domain.OrderCompleted}, nil
		},
	}
	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, &stubDispatchUsecase{}, lc)

	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/complete", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestOrderAction_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(logx.Nop(), &stubOrderReader{}, &stubDispatchUsecase{}, &stubLifecycleUsecase{})

	body := strings.NewReader(`{`)
	w := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order/ord-1/action", body))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
