package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/light-bringer/storefront-service/internal/adapters/commerceapi"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/feed"
	checkout "github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// handleError writes the response for a use case error.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapErrorToHTTP(err)

	var changed *checkout.CartChangedError
	if errors.As(err, &changed) {
		respondError(w, status, message, changed.Result)
		return
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondError(w, status, message, nil)
}

// mapErrorToHTTP converts domain errors to a status code and a message that
// is safe to show the shopper.
func mapErrorToHTTP(err error) (int, string) {
	var (
		invalidCoupon *coupon.InvalidCouponError
		rejected      *checkout.OrderRejectedError
		upstream      *commerceapi.StatusError
	)

	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, feed.ErrSessionNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, coupon.ErrCouponNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, cart.ErrInvalidIndex),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrVariationRequired),
		errors.Is(err, cart.ErrVariationNotFound),
		errors.Is(err, coupon.ErrEmptyCode),
		errors.Is(err, coupon.ErrPhoneRequired),
		errors.Is(err, checkout.ErrInvalidCustomer),
		errors.Is(err, checkout.ErrUnsupportedPayment),
		errors.Is(err, checkout.ErrInvalidPayment):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrQuantityExceedsStock),
		errors.Is(err, cart.ErrNoCouponApplied),
		errors.Is(err, checkout.ErrCartChanged),
		errors.Is(err, committer.ErrVersionConflict):
		return http.StatusConflict, err.Error()

	case errors.As(err, &invalidCoupon):
		return http.StatusUnprocessableEntity, invalidCoupon.Error()

	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity, rejected.Error()

	case errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrBelowMinimumOrder),
		errors.Is(err, coupon.ErrNoRemainingUses):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, coupon.ErrValidationFailed):
		return http.StatusBadGateway, coupon.MsgValidationFailed

	case errors.Is(err, checkout.ErrPaymentUnavailable),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.As(err, &upstream):
		return http.StatusBadGateway, "commerce backend error"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
