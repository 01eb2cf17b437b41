package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	keyID := "rzp_test_key"
	keySecret := "test-secret"
	gw := NewRazorpayGateway(keyID, keySecret).(*razorpayGateway)

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"id": "order_123",
			"entity": "order",
			"amount": 20400,
			"amount_due": 20400,
			"currency": "INR",
			"receipt": "abc123",
			"status": "created",
			"created_at": 1700000000
		}`

		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://api.razorpay.com/v1/orders", req.URL.String())

			user, pass, ok := req.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, keyID, user)
			assert.Equal(t, keySecret, pass)

			var body map[string]interface{}
			raw, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, float64(20400), body["amount"])
			assert.Equal(t, "INR", body["currency"])
			assert.Equal(t, "abc123", body["receipt"])

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		order, err := gw.CreateOrder(context.Background(), 20400, "INR", "abc123")
		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "order_123", order.ID)
		assert.Equal(t, int64(20400), order.Amount)
		assert.Equal(t, "created", order.Status)
	})

	t.Run("GatewayError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusBadRequest,
				Body:       io.NopCloser(bytes.NewBufferString(`{"error":{"description":"bad amount"}}`)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.CreateOrder(context.Background(), -1, "INR", "abc123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "razorpay error")
	})

	t.Run("NetworkError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := gw.CreateOrder(context.Background(), 100, "INR", "abc123")
		assert.Error(t, err)
	})

	t.Run("MalformedResponse", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{not json`)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.CreateOrder(context.Background(), 100, "INR", "abc123")
		assert.Error(t, err)
	})
}

func TestExpectedSignature_Deterministic(t *testing.T) {
	a := ExpectedSignature("order_1", "pay_1", "secret")
	b := ExpectedSignature("order_1", "pay_1", "secret")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, ExpectedSignature("order_2", "pay_1", "secret"))
	assert.NotEqual(t, a, ExpectedSignature("order_1", "pay_2", "secret"))
	assert.NotEqual(t, a, ExpectedSignature("order_1", "pay_1", "other"))
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	keySecret := "verify-secret"
	gw := NewRazorpayGateway("rzp_test_key", keySecret)

	valid := ExpectedSignature("order_1", "pay_1", keySecret)

	t.Run("Match", func(t *testing.T) {
		assert.NoError(t, gw.VerifySignature("order_1", "pay_1", valid))
	})

	t.Run("Every single-bit mutation is rejected", func(t *testing.T) {
		raw := []byte(valid)
		for i := range raw {
			for bit := 0; bit < 8; bit++ {
				mutated := make([]byte, len(raw))
				copy(mutated, raw)
				mutated[i] ^= 1 << bit

				err := gw.VerifySignature("order_1", "pay_1", string(mutated))
				assert.ErrorIs(t, err, ErrInvalidSignature)
			}
		}
	})

	t.Run("Wrong ids rejected", func(t *testing.T) {
		err := gw.VerifySignature("order_2", "pay_1", valid)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestNewReceipt(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := NewReceipt()
		assert.Len(t, r, 20) // 10 random bytes, hex encoded
		assert.False(t, seen[r], "receipt repeated: %s", r)
		seen[r] = true
	}
}
