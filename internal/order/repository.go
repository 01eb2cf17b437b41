package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greencart-be/internal/address"
	"greencart-be/internal/logger"
	"greencart-be/internal/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetByGatewayOrderID(ctx context.Context, razorpayOrderID string) (*Order, error)
	MarkPaid(ctx context.Context, razorpayOrderID, paymentID, signature string) error
	FetchOrders(ctx context.Context, userID *uint, opts ListOptions) ([]*Order, error)
	FetchOrderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*OrderItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, address_id, amount,
			payment_method, payment_status, status,
			razorpay_order_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`,
		o.ID,
		o.UserID,
		o.AddressID,
		o.Amount,
		o.PaymentMethod,
		o.PaymentStatus,
		o.Status,
		o.RazorpayOrderID,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, item := range o.Items {
		item.OrderID = o.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, quantity, price
			) VALUES ($1,$2,$3,$4)
		`,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order persisted")

	return nil
}

const selectOrders = `
	SELECT
		o.id, o.user_id, o.address_id, o.amount,
		o.payment_method, o.payment_status, o.status,
		o.razorpay_order_id, o.razorpay_payment_id, o.razorpay_signature,
		o.created_at, o.updated_at,
		a.id, a.user_id, a.first_name, a.last_name, a.phone,
		a.street, a.city, a.state, a.zipcode, a.country
	FROM orders o
	JOIN addresses a ON a.id = o.address_id
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var a address.Address
	err := row.Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.Amount,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.RazorpayOrderID, &o.RazorpayPaymentID, &o.RazorpaySignature,
		&o.CreatedAt, &o.UpdatedAt,
		&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Phone,
		&a.Street, &a.City, &a.State, &a.Zipcode, &a.Country,
	)
	if err != nil {
		return nil, err
	}
	o.Address = &a
	return &o, nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, razorpayOrderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrders+` WHERE o.razorpay_order_id = $1`, razorpayOrderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.FetchOrderItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return o, nil
}

// MarkPaid settles the pending order created at gateway-order time. The
// payment_status guard makes a second verification of the same gateway
// order fail instead of silently rewriting payment fields.
func (r *repository) MarkPaid(ctx context.Context, razorpayOrderID, paymentID, signature string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET
			razorpay_payment_id = $2,
			razorpay_signature = $3,
			payment_status = 'Paid',
			status = 'Processing',
			updated_at = NOW()
		WHERE razorpay_order_id = $1
		  AND payment_status = 'Pending'
	`, razorpayOrderID, paymentID, signature)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE razorpay_order_id = $1)`,
			razorpayOrderID,
		).Scan(&exists); err == nil && exists {
			return ErrAlreadyPaid
		}
		return ErrOrderNotFound
	}

	return nil
}

// FetchOrders lists settled orders: every COD order plus online orders that
// reached Paid. Unpaid online attempts stay invisible.
func (r *repository) FetchOrders(ctx context.Context, userID *uint, opts ListOptions) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "FetchOrders"),
	)

	query := selectOrders + ` WHERE (o.payment_method = 'COD' OR o.payment_status = 'Paid')`

	args := []any{}
	argIndex := 1

	if userID != nil {
		query += fmt.Sprintf(" AND o.user_id = $%d", argIndex)
		args = append(args, *userID)
		argIndex++
	}

	query += " ORDER BY o.created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var orderIDs []uuid.UUID

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	items, err := r.FetchOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	log.Info("orders fetched", zap.Int("count", len(orders)))

	return orders, nil
}

// FetchOrderItems batch-loads line items with their product snapshots,
// keyed by order id.
func (r *repository) FetchOrderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*OrderItem, error) {
	result := make(map[uuid.UUID][]*OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	const q = `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.id, p.name, p.category, p.price, p.offer_price, p.image_url, p.in_stock
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		var p product.Product
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&p.ID, &p.Name, &p.Category, &p.Price, &p.OfferPrice, &p.ImageURL, &p.InStock,
		)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		result[item.OrderID] = append(result[item.OrderID], &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
