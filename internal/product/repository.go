package product

import (
	"context"
	"database/sql"
	"errors"

	"greencart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	const q = `
		SELECT id, name, category, price, offer_price, image_url, in_stock
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.OfferPrice, &p.ImageURL, &p.InStock)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetByIDs batch-fetches products keyed by id. Missing ids are simply
// absent from the result map; callers decide how to treat them.
func (r *repository) GetByIDs(ctx context.Context, ids []string) (map[string]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetByIDs"),
		zap.Int("id_count", len(ids)),
	)

	if len(ids) == 0 {
		return map[string]*Product{}, nil
	}

	const q = `
		SELECT id, name, category, price, offer_price, image_url, in_stock
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make(map[string]*Product, len(ids))
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.OfferPrice, &p.ImageURL, &p.InStock); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		products[p.ID] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
