package order

import (
	"time"

	"greencart-be/internal/address"
	"greencart-be/internal/product"
)

// Response shapes mirror the storefront client's expectations: product and
// address references resolved into full objects.

type OrderItemResponse struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
	Price    int              `json:"price"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        uint                `json:"userId"`
	Items         []OrderItemResponse `json:"items"`
	Address       *address.Address    `json:"address"`
	Amount        int                 `json:"amount"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	PaymentStatus PaymentStatus       `json:"paymentStatus"`
	Status        string              `json:"status"`

	RazorpayOrderID   *string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string `json:"razorpayPaymentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToOrderResponse(o *Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &OrderResponse{
		ID:                o.ID.String(),
		UserID:            o.UserID,
		Items:             items,
		Address:           o.Address,
		Amount:            o.Amount,
		PaymentMethod:     o.PaymentMethod,
		PaymentStatus:     o.PaymentStatus,
		Status:            o.Status,
		RazorpayOrderID:   o.RazorpayOrderID,
		RazorpayPaymentID: o.RazorpayPaymentID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func ToOrderResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
