package order

import (
	"time"

	"greencart-be/internal/address"
	"greencart-be/internal/product"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "Online"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Fulfillment states. Status is free text; these are the values this module
// writes itself.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPaymentPending = "Payment Pending"
	StatusProcessing     = "Processing"
)

type Order struct {
	ID        uuid.UUID
	UserID    uint
	AddressID uuid.UUID
	Amount    int
	Status    string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	RazorpayOrderID   *string
	RazorpayPaymentID *string
	RazorpaySignature *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Items   []*OrderItem
	Address *address.Address
}

type OrderItem struct {
	ID        int64
	OrderID   uuid.UUID
	ProductID string
	Quantity  int
	// Price is the unit offer price captured at placement time.
	Price   int
	Product *product.Product
}

type ItemInput struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	Items     []ItemInput
	AddressID string
}

// ListOptions carries optional pagination. Zero Limit means unbounded,
// preserving the historical list behavior.
type ListOptions struct {
	Limit  int32
	Offset int32
}
