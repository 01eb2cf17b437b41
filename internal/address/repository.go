package address

import (
	"context"
	"database/sql"
	"errors"

	"greencart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAddressNotFound = errors.New("address not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)
	GetForUser(ctx context.Context, id uuid.UUID, userID uint) (*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectAddress = `
	SELECT id, user_id, first_name, last_name, phone,
	       street, city, state, zipcode, country
	FROM addresses
`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	row := r.db.QueryRowContext(ctx, selectAddress+` WHERE id = $1`, id)
	return scanAddress(ctx, row)
}

// GetForUser resolves an address only when it belongs to the given user.
func (r *repository) GetForUser(ctx context.Context, id uuid.UUID, userID uint) (*Address, error) {
	row := r.db.QueryRowContext(ctx, selectAddress+` WHERE id = $1 AND user_id = $2`, id, userID)
	return scanAddress(ctx, row)
}

func scanAddress(ctx context.Context, row *sql.Row) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Phone,
		&a.Street, &a.City, &a.State, &a.Zipcode, &a.Country,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to scan address", zap.Error(err))
		return nil, err
	}

	return &a, nil
}
