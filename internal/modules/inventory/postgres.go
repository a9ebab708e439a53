package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, listingID uuid.UUID) (*Inventory, error) {
	inv := &Inventory{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, listing_id, available, reserved, updated_at
		FROM inventories WHERE listing_id=$1`, listingID).
		Scan(&inv.ID, &inv.ListingID, &inv.Available, &inv.Reserved, &inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("inventory", listingID.String())
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Reserve locks the row, validates availability, and moves qty from available
// to reserved. The lock is held until the transaction commits, so two racing
// reservations serialize and the loser sees the post-commit counter.
func (r *postgresRepo) Reserve(ctx context.Context, listingID uuid.UUID, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := reserveInTx(ctx, tx, listingID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) CommitReserved(ctx context.Context, listingID uuid.UUID, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := commitReservedInTx(ctx, tx, listingID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) ReleaseReserved(ctx context.Context, listingID uuid.UUID, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := releaseReservedInTx(ctx, tx, listingID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) Restore(ctx context.Context, listingID uuid.UUID, qty int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := restoreInTx(ctx, tx, listingID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) Adjust(ctx context.Context, listingID uuid.UUID, delta int) (*Inventory, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	available, err := lockRow(ctx, tx, listingID)
	if err != nil {
		return nil, err
	}
	if available+delta < 0 {
		return nil, apperr.InvalidArgument(
			fmt.Sprintf("adjustment of %d would make available negative (currently %d)", delta, available))
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE inventories SET available = available + $1, updated_at = NOW()
		WHERE listing_id = $2`, delta, listingID)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, listingID)
}

// ── in-tx primitives ─────────────────────────────────────────────────────────
// Exported to sibling tx helpers via the package-level *InTx functions so the
// order checkout transaction can lock and mutate inventory rows alongside its
// own inserts.

func lockRow(ctx context.Context, tx *sql.Tx, listingID uuid.UUID) (available int, err error) {
	err = tx.QueryRowContext(ctx,
		`SELECT available FROM inventories WHERE listing_id=$1 FOR UPDATE`, listingID).
		Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("inventory", listingID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("lock inventory: %w", err)
	}
	return available, nil
}

func reserveInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	available, err := lockRow(ctx, tx, listingID)
	if err != nil {
		return err
	}
	if available < qty {
		return &apperr.InsufficientStockError{
			ListingID: listingID,
			Requested: qty,
			Available: available,
		}
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE inventories
		SET available = available - $1, reserved = reserved + $1, updated_at = NOW()
		WHERE listing_id = $2`, qty, listingID)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	return nil
}

func commitReservedInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	if _, err := lockRow(ctx, tx, listingID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE inventories
		SET reserved = reserved - $1, updated_at = NOW()
		WHERE listing_id = $2`, qty, listingID)
	if err != nil {
		return fmt.Errorf("commit reserved stock: %w", err)
	}
	return nil
}

func releaseReservedInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	if _, err := lockRow(ctx, tx, listingID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE inventories
		SET reserved = reserved - $1, available = available + $1, updated_at = NOW()
		WHERE listing_id = $2`, qty, listingID)
	if err != nil {
		return fmt.Errorf("release reserved stock: %w", err)
	}
	return nil
}

func restoreInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	if _, err := lockRow(ctx, tx, listingID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE inventories
		SET available = available + $1, updated_at = NOW()
		WHERE listing_id = $2`, qty, listingID)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

// ReserveInTx exposes the locked reserve step for a caller-owned transaction.
func ReserveInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	return reserveInTx(ctx, tx, listingID, qty)
}

// CommitReservedInTx exposes the locked commit step for a caller-owned transaction.
func CommitReservedInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	return commitReservedInTx(ctx, tx, listingID, qty)
}

// ReleaseReservedInTx exposes the locked release step for a caller-owned transaction.
func ReleaseReservedInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	return releaseReservedInTx(ctx, tx, listingID, qty)
}

// RestoreInTx exposes the locked restore step for a caller-owned transaction.
func RestoreInTx(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, qty int) error {
	return restoreInTx(ctx, tx, listingID, qty)
}
