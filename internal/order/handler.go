package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"greencart-be/internal/address"
	"greencart-be/internal/payment"
	"greencart-be/internal/product"
	"greencart-be/internal/utils"
)

const maxPageSize = 100

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type placeOrderRequest struct {
	Items []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Address string `json:"address"`
}

func (req *placeOrderRequest) toInput() PlaceOrderInput {
	in := PlaceOrderInput{AddressID: req.Address}
	for _, item := range req.Items {
		in.Items = append(in.Items, ItemInput{ProductID: item.Product, Quantity: item.Quantity})
	}
	return in
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

// PlaceCOD handles POST /api/order/cod. Business failures keep a 200 status
// with a flat failure body; clients read the success flag.
func (h *Handler) PlaceCOD(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, "Invalid data")
		return
	}

	if _, err := h.svc.PlaceCOD(r.Context(), userID, req.toInput()); err != nil {
		writeFailure(w, http.StatusOK, failureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order Placed Successfully",
	})
}

// CreateGatewayOrder handles POST /api/order/razorpay/create-order.
func (h *Handler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	gwOrder, key, err := h.svc.CreateGatewayOrder(r.Context(), userID, req.toInput())
	if err != nil {
		if isValidationError(err) {
			writeFailure(w, http.StatusBadRequest, failureMessage(err))
			return
		}
		writeFailure(w, http.StatusInternalServerError, failureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"order":   gwOrder,
		"key":     key,
	})
}

// VerifyPayment handles POST /api/order/razorpay/verify.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	o, err := h.svc.VerifyPayment(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			writeFailure(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		writeFailure(w, http.StatusInternalServerError, failureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment verified and order placed",
		"order":   ToOrderResponse(o),
	})
}

// UserOrders handles GET /api/order/user.
func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.svc.ListUserOrders(r.Context(), userID, listOptionsFrom(r))
	if err != nil {
		writeFailure(w, http.StatusOK, failureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  ToOrderResponses(orders),
	})
}

// AllOrders handles GET /api/order/seller.
func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAllOrders(r.Context(), listOptionsFrom(r))
	if err != nil {
		writeFailure(w, http.StatusOK, failureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  ToOrderResponses(orders),
	})
}

// listOptionsFrom reads optional limit/offset query parameters. Absent or
// malformed values keep the unbounded default.
func listOptionsFrom(r *http.Request) ListOptions {
	var opts ListOptions

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.ParseInt(raw, 10, 32); err == nil && limit > 0 {
			if limit > maxPageSize {
				limit = maxPageSize
			}
			opts.Limit = int32(limit)
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.ParseInt(raw, 10, 32); err == nil && offset > 0 {
			opts.Offset = int32(offset)
		}
	}

	return opts
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, product.ErrProductNotFound) ||
		errors.Is(err, address.ErrAddressNotFound)
}

func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
