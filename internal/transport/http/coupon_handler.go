package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/coupon/queries/list_my_coupons"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/auto_apply"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/remove_coupon"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/select_coupon"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/validate_code"
)

// CouponHandler applies and removes coupons on the shopper's cart.
type CouponHandler struct {
	validateCode  *validate_code.Interactor
	selectCoupon  *select_coupon.Interactor
	autoApply     *auto_apply.Interactor
	removeCoupon  *remove_coupon.Interactor
	listMyCoupons *list_my_coupons.Query
}

func NewCouponHandler(
	validateCode *validate_code.Interactor,
	selectCoupon *select_coupon.Interactor,
	autoApply *auto_apply.Interactor,
	removeCoupon *remove_coupon.Interactor,
	listMyCoupons *list_my_coupons.Query,
) *CouponHandler {
	return &CouponHandler{
		validateCode:  validateCode,
		selectCoupon:  selectCoupon,
		autoApply:     autoApply,
		removeCoupon:  removeCoupon,
		listMyCoupons: listMyCoupons,
	}
}

type validateCouponRequestDTO struct {
	Code          string `json:"code"`
	CustomerPhone string `json:"customerPhone"`
}

type selectCouponRequestDTO struct {
	CustomerPhone string `json:"customerPhone"`
	CouponID      string `json:"couponId"`
	Code          string `json:"code"`
}

type autoApplyRequestDTO struct {
	CustomerPhone string `json:"customerPhone"`
}

func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	view, err := h.validateCode.Execute(r.Context(), &validate_code.Request{
		CartID:        cartIDFromContext(r.Context()),
		Code:          req.Code,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CouponHandler) MyCoupons(w http.ResponseWriter, r *http.Request) {
	entries, err := h.listMyCoupons.Execute(r.Context(), &list_my_coupons.Request{
		CustomerPhone: chi.URLParam(r, "phone"),
		CartID:        r.Header.Get(CartIDHeader),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *CouponHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectCouponRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	view, err := h.selectCoupon.Execute(r.Context(), &select_coupon.Request{
		CartID:        cartIDFromContext(r.Context()),
		CustomerPhone: req.CustomerPhone,
		CouponID:      req.CouponID,
		Code:          req.Code,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CouponHandler) AutoApply(w http.ResponseWriter, r *http.Request) {
	var req autoApplyRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	view, err := h.autoApply.Execute(r.Context(), &auto_apply.Request{
		CartID:        cartIDFromContext(r.Context()),
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	view, err := h.removeCoupon.Execute(r.Context(), &remove_coupon.Request{CartID: cartIDFromContext(r.Context())})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
