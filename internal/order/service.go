package order

import (
	"context"
	"fmt"

	"greencart-be/internal/address"
	"greencart-be/internal/logger"
	"greencart-be/internal/payment"
	"greencart-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// taxRatePercent applies to both payment paths.
const taxRatePercent = 2

const gatewayCurrency = "INR"

type Service interface {
	PlaceCOD(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error)
	CreateGatewayOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*payment.GatewayOrder, string, error)
	VerifyPayment(ctx context.Context, razorpayOrderID, paymentID, signature string) (*Order, error)
	ListUserOrders(ctx context.Context, userID uint, opts ListOptions) ([]*Order, error)
	ListAllOrders(ctx context.Context, opts ListOptions) ([]*Order, error)
}

type service struct {
	repo      Repository
	products  product.Repository
	addresses address.Repository
	gateway   payment.Gateway
}

func NewService(repo Repository, products product.Repository, addresses address.Repository, gateway payment.Gateway) Service {
	return &service{
		repo:      repo,
		products:  products,
		addresses: addresses,
		gateway:   gateway,
	}
}

// buildOrder validates the input, resolves the delivery address against the
// caller and prices the line items from the catalog. Prices never come from
// the request. A missing product fails the whole order.
func (s *service) buildOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error) {
	if len(in.Items) == 0 || in.AddressID == "" {
		return nil, fmt.Errorf("%w: address and items are required", ErrInvalidOrder)
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidOrder)
		}
		ids = append(ids, item.ProductID)
	}

	addrID, err := uuid.Parse(in.AddressID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed address id", ErrInvalidOrder)
	}

	addr, err := s.addresses.GetForUser(ctx, addrID, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*OrderItem, 0, len(in.Items))
	subtotal := 0

	for _, item := range in.Items {
		p, ok := catalog[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", product.ErrProductNotFound, item.ProductID)
		}

		subtotal += p.OfferPrice * item.Quantity
		items = append(items, &OrderItem{
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     p.OfferPrice,
			Product:   p,
		})
	}

	amount := subtotal + subtotal*taxRatePercent/100

	return &Order{
		ID:        uuid.New(),
		UserID:    userID,
		AddressID: addr.ID,
		Address:   addr,
		Amount:    amount,
		Items:     items,
	}, nil
}

func (s *service) PlaceCOD(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceCOD"),
		zap.Uint("user_id", userID),
	)

	o, err := s.buildOrder(ctx, userID, in)
	if err != nil {
		log.Warn("order rejected", zap.Error(err))
		return nil, err
	}

	o.PaymentMethod = PaymentMethodCOD
	o.PaymentStatus = PaymentStatusPending
	o.Status = StatusOrderPlaced

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("COD order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int("amount", o.Amount),
	)

	return o, nil
}

// CreateGatewayOrder creates the remote order and persists a pending local
// order keyed by the gateway order id, so verification can settle it in
// place instead of writing a disconnected record.
func (s *service) CreateGatewayOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*payment.GatewayOrder, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateGatewayOrder"),
		zap.Uint("user_id", userID),
	)

	o, err := s.buildOrder(ctx, userID, in)
	if err != nil {
		log.Warn("order rejected", zap.Error(err))
		return nil, "", err
	}

	// Gateway amount is in the minor currency unit.
	receipt := payment.NewReceipt()
	gwOrder, err := s.gateway.CreateOrder(ctx, int64(o.Amount)*100, gatewayCurrency, receipt)
	if err != nil {
		log.Error("gateway order creation failed", zap.Error(err))
		return nil, "", fmt.Errorf("failed to create gateway order: %w", err)
	}

	o.PaymentMethod = PaymentMethodOnline
	o.PaymentStatus = PaymentStatusPending
	o.Status = StatusPaymentPending
	o.RazorpayOrderID = &gwOrder.ID

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to persist pending order", zap.Error(err))
		return nil, "", err
	}

	log.Info("gateway order created",
		zap.String("order_id", o.ID.String()),
		zap.String("gateway_order_id", gwOrder.ID),
		zap.Int64("amount_minor", gwOrder.Amount),
	)

	return gwOrder, s.gateway.KeyID(), nil
}

func (s *service) VerifyPayment(ctx context.Context, razorpayOrderID, paymentID, signature string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyPayment"),
		zap.String("gateway_order_id", razorpayOrderID),
	)

	if err := s.gateway.VerifySignature(razorpayOrderID, paymentID, signature); err != nil {
		log.Warn("signature verification failed")
		return nil, err
	}

	if err := s.repo.MarkPaid(ctx, razorpayOrderID, paymentID, signature); err != nil {
		log.Error("failed to settle order", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.GetByGatewayOrderID(ctx, razorpayOrderID)
	if err != nil {
		return nil, err
	}

	log.Info("payment verified", zap.String("order_id", o.ID.String()))

	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uint, opts ListOptions) ([]*Order, error) {
	return s.repo.FetchOrders(ctx, &userID, opts)
}

func (s *service) ListAllOrders(ctx context.Context, opts ListOptions) ([]*Order, error) {
	return s.repo.FetchOrders(ctx, nil, opts)
}
