package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/inventory"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateCheckout runs the whole checkout in a single transaction: inventory
// rows are locked and reserved in the caller's (ascending listing id) order,
// then every sibling order with its lines and token is inserted, and the
// cart is converted. A shortfall on any listing rolls everything back.
func (r *postgresRepo) CreateCheckout(ctx context.Context, orders []*Order, reservations []Reservation, cartID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, res := range reservations {
		if err := inventory.ReserveInTx(ctx, tx, res.ListingID, res.Qty); err != nil {
			return err
		}
	}

	for _, o := range orders {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders
			  (id, consumer_id, store_id, status, total, currency,
			   pickup_start, pickup_end, cancel_reason)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			o.ID, o.ConsumerID, o.StoreID, o.Status, o.Total, o.Currency,
			o.PickupStart, o.PickupEnd, o.CancelReason)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, line := range o.Lines {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_lines (order_id, listing_id, quantity, unit_price, line_total)
				VALUES ($1,$2,$3,$4,$5)`,
				line.OrderID, line.ListingID, line.Quantity, line.UnitPrice, line.LineTotal)
			if err != nil {
				return fmt.Errorf("insert order_line: %w", err)
			}
		}

		if o.Token != nil {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO pickup_tokens (order_id, token_hash, issued_at, expires_at, used_at)
				VALUES ($1,$2,$3,$4,NULL)`,
				o.Token.OrderID, o.Token.TokenHash, o.Token.IssuedAt, o.Token.ExpiresAt)
			if err != nil {
				return fmt.Errorf("insert pickup_token: %w", err)
			}
		}
	}

	if cartID != uuid.Nil {
		if _, err = tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id=$1`, cartID); err != nil {
			return fmt.Errorf("clear cart lines: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE carts SET store_id=NULL, status='CONVERTED', updated_at=NOW() WHERE id=$1`, cartID)
		if err != nil {
			return fmt.Errorf("convert cart: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id, consumer_id, store_id, status, total, currency,
		       pickup_start, pickup_end, cancel_reason, created_at, updated_at
		FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	if o.Lines, err = r.listLines(ctx, o.ID); err != nil {
		return nil, err
	}
	o.Token, err = r.getToken(ctx, o.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListOrdersByStore(ctx context.Context, storeID uuid.UUID, status OrderStatus) ([]*Order, error) {
	query := `
		SELECT id, consumer_id, store_id, status, total, currency,
		       pickup_start, pickup_end, cancel_reason, created_at, updated_at
		FROM orders WHERE store_id=$1`
	args := []interface{}{storeID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListOrdersByConsumer(ctx context.Context, consumerID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, consumer_id, store_id, status, total, currency,
		       pickup_start, pickup_end, cancel_reason, created_at, updated_at
		FROM orders WHERE consumer_id=$1 ORDER BY created_at DESC`, consumerID)
}

func (r *postgresRepo) AcceptOrder(ctx context.Context, o *Order) error {
	return r.transition(ctx, o, StatusPending, StatusAccepted, "accept", "", inventory.CommitReservedInTx)
}

func (r *postgresRepo) RejectOrder(ctx context.Context, o *Order, reason string) error {
	return r.transition(ctx, o, StatusPending, StatusRejected, "reject", reason, inventory.ReleaseReservedInTx)
}

func (r *postgresRepo) CancelOrder(ctx context.Context, o *Order, reason string) error {
	return r.transition(ctx, o, StatusAccepted, StatusCancelled, "cancel", reason, inventory.RestoreInTx)
}

// transition re-reads the order status under a row lock, so two racing
// supplier actions serialize and the loser observes InvalidState; the stock
// mutation for every line commits atomically with the status write.
func (r *postgresRepo) transition(
	ctx context.Context,
	o *Order,
	from, to OrderStatus,
	attempted, reason string,
	mutate func(context.Context, *sql.Tx, uuid.UUID, int) error,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, o.ID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("order", o.ID.String())
	}
	if err != nil {
		return fmt.Errorf("lock order: %w", err)
	}
	if current != from {
		return &apperr.InvalidStateError{Current: string(current), Attempted: attempted}
	}

	for _, line := range o.Lines {
		if err := mutate(ctx, tx, line.ListingID, line.Quantity); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, cancel_reason=$2, updated_at=NOW() WHERE id=$3`,
		to, reason, o.ID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetTokenByHash(ctx context.Context, tokenHash string) (*PickupToken, error) {
	t := &PickupToken{}
	var usedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, token_hash, issued_at, expires_at, used_at
		FROM pickup_tokens WHERE token_hash=$1`, tokenHash).
		Scan(&t.OrderID, &t.TokenHash, &t.IssuedAt, &t.ExpiresAt, &usedAt)
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	return t, nil
}

func (r *postgresRepo) CompleteOrder(ctx context.Context, orderID uuid.UUID, usedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("order", orderID.String())
	}
	if err != nil {
		return fmt.Errorf("lock order: %w", err)
	}
	if current != StatusAccepted {
		return &apperr.InvalidStateError{Current: string(current), Attempted: "complete"}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE pickup_tokens SET used_at=$1 WHERE order_id=$2 AND used_at IS NULL`,
		usedAt, orderID)
	if err != nil {
		return fmt.Errorf("redeem token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrTokenUsed
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`,
		StatusCompleted, orderID)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}

	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	var pickupStart, pickupEnd sql.NullTime
	err := row.Scan(
		&o.ID, &o.ConsumerID, &o.StoreID, &o.Status, &o.Total, &o.Currency,
		&pickupStart, &pickupEnd, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if pickupStart.Valid {
		o.PickupStart = &pickupStart.Time
	}
	if pickupEnd.Valid {
		o.PickupEnd = &pickupEnd.Time
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var pickupStart, pickupEnd sql.NullTime
		if err := rows.Scan(
			&o.ID, &o.ConsumerID, &o.StoreID, &o.Status, &o.Total, &o.Currency,
			&pickupStart, &pickupEnd, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if pickupStart.Valid {
			o.PickupStart = &pickupStart.Time
		}
		if pickupEnd.Valid {
			o.PickupEnd = &pickupEnd.Time
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Lines, err = r.listLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listLines(ctx context.Context, orderID uuid.UUID) ([]*Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, listing_id, quantity, unit_price, line_total
		FROM order_lines WHERE order_id=$1 ORDER BY listing_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*Line
	for rows.Next() {
		line := &Line{}
		if err := rows.Scan(&line.OrderID, &line.ListingID, &line.Quantity,
			&line.UnitPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) getToken(ctx context.Context, orderID uuid.UUID) (*PickupToken, error) {
	t := &PickupToken{}
	var usedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, token_hash, issued_at, expires_at, used_at
		FROM pickup_tokens WHERE order_id=$1`, orderID).
		Scan(&t.OrderID, &t.TokenHash, &t.IssuedAt, &t.ExpiresAt, &usedAt)
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	return t, nil
}
