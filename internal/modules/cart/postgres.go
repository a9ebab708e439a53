package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetActiveByConsumer(ctx context.Context, consumerID uuid.UUID) (*Cart, error) {
	c := &Cart{}
	var storeID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, consumer_id, store_id, status, created_at, updated_at
		FROM carts WHERE consumer_id=$1 AND status=$2`, consumerID, CartActive).
		Scan(&c.ID, &c.ConsumerID, &storeID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if storeID.Valid {
		sid, err := uuid.Parse(storeID.String)
		if err != nil {
			return nil, fmt.Errorf("malformed store_id on cart %s: %w", c.ID, err)
		}
		c.StoreID = &sid
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT cart_id, listing_id, quantity
		FROM cart_lines WHERE cart_id=$1 ORDER BY listing_id`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		line := &Line{}
		if err := rows.Scan(&line.CartID, &line.ListingID, &line.Quantity); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, line)
	}
	return c, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, c *Cart) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, consumer_id, store_id, status)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.ConsumerID, nil, c.Status)
	return err
}

// UpsertLine writes the line and the store binding in one transaction, so a
// failure between the two cannot leave a line on an unbound cart.
func (r *postgresRepo) UpsertLine(ctx context.Context, cartID, listingID uuid.UUID, qty int, storeID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_lines (cart_id, listing_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (cart_id, listing_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		cartID, listingID, qty)
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE carts SET store_id=$1, updated_at=NOW() WHERE id=$2`, storeID, cartID)
	if err != nil {
		return fmt.Errorf("bind cart store: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) UpdateLineQuantity(ctx context.Context, cartID, listingID uuid.UUID, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE cart_lines SET quantity=$1 WHERE cart_id=$2 AND listing_id=$3`,
		qty, cartID, listingID)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	if err := touch(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteLine(ctx context.Context, cartID, listingID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE cart_id=$1 AND listing_id=$2`, cartID, listingID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}

	var remaining int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_lines WHERE cart_id=$1`, cartID).Scan(&remaining)
	if err != nil {
		return fmt.Errorf("count cart lines: %w", err)
	}
	if remaining == 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE carts SET store_id=NULL, updated_at=NOW() WHERE id=$1`, cartID)
		if err != nil {
			return fmt.Errorf("unbind cart store: %w", err)
		}
	} else if err := touch(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) Clear(ctx context.Context, cartID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id=$1`, cartID); err != nil {
		return fmt.Errorf("clear cart lines: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE carts SET store_id=NULL, updated_at=NOW() WHERE id=$1`, cartID)
	if err != nil {
		return fmt.Errorf("unbind cart store: %w", err)
	}

	return tx.Commit()
}

func touch(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE carts SET updated_at=NOW() WHERE id=$1`, cartID)
	return err
}
