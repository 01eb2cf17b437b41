package order

import (
	"encoding/json"
	"testing"
	"time"

	"greencart-be/internal/address"
	"greencart-be/internal/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderResponse(t *testing.T) {
	gwOrderID := "order_abc"
	gwPaymentID := "pay_1"
	sig := "topsecretsig"

	o := &Order{
		ID:                uuid.New(),
		UserID:            7,
		Amount:            204,
		PaymentMethod:     PaymentMethodOnline,
		PaymentStatus:     PaymentStatusPaid,
		Status:            StatusProcessing,
		RazorpayOrderID:   &gwOrderID,
		RazorpayPaymentID: &gwPaymentID,
		RazorpaySignature: &sig,
		CreatedAt:         time.Now(),
		Address:           &address.Address{City: "Bengaluru"},
		Items: []*OrderItem{
			{ProductID: "p1", Quantity: 2, Price: 100, Product: &product.Product{ID: "p1", Name: "Potato 500g"}},
		},
	}

	resp := ToOrderResponse(o)
	assert.Equal(t, o.ID.String(), resp.ID)
	assert.Equal(t, 204, resp.Amount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Potato 500g", resp.Items[0].Product.Name)
	assert.Equal(t, "Bengaluru", resp.Address.City)

	// The stored signature never leaves the API.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), sig)
	assert.Contains(t, string(raw), gwOrderID)
}

func TestToOrderResponses_Empty(t *testing.T) {
	out := ToOrderResponses(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
