package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateStore(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, supplier_id, name, address, city, phone, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.SupplierID, s.Name, s.Address, s.City, s.Phone, s.IsActive)
	return err
}

func (r *postgresRepo) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s := &Store{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, name, address, city, phone, is_active, created_at, updated_at
		FROM stores WHERE id=$1`, uid).
		Scan(&s.ID, &s.SupplierID, &s.Name, &s.Address, &s.City, &s.Phone,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *postgresRepo) ListStoresBySupplier(ctx context.Context, supplierID string) ([]*Store, error) {
	uid, err := uuid.Parse(supplierID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, name, address, city, phone, is_active, created_at, updated_at
		FROM stores WHERE supplier_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stores []*Store
	for rows.Next() {
		s := &Store{}
		if err := rows.Scan(&s.ID, &s.SupplierID, &s.Name, &s.Address, &s.City, &s.Phone,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// CreateListing inserts the listing and its inventory row inside a single
// transaction, so no listing ever exists without stock counters.
func (r *postgresRepo) CreateListing(ctx context.Context, l *Listing, initialStock int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO listings
		  (id, store_id, title, description, original_price, rescue_price,
		   pickup_start, pickup_end, expires_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.StoreID, l.Title, l.Description, l.OriginalPrice, l.RescuePrice,
		l.PickupStart, l.PickupEnd, l.ExpiresAt, l.Status)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventories (id, listing_id, available, reserved)
		VALUES ($1,$2,$3,0)`,
		uuid.New(), l.ID, initialStock)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetListingByID(ctx context.Context, id string) (*Listing, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	l := &Listing{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, store_id, title, description, original_price, rescue_price,
		       pickup_start, pickup_end, expires_at, status, created_at, updated_at
		FROM listings WHERE id=$1`, uid).
		Scan(&l.ID, &l.StoreID, &l.Title, &l.Description, &l.OriginalPrice, &l.RescuePrice,
			&l.PickupStart, &l.PickupEnd, &l.ExpiresAt, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *postgresRepo) ListListingsByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Listing, error) {
	uid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, store_id, title, description, original_price, rescue_price,
		       pickup_start, pickup_end, expires_at, status, created_at, updated_at
		FROM listings WHERE store_id=$1`
	args := []interface{}{uid}
	if activeOnly {
		query += ` AND status=$2`
		args = append(args, ListingActive)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var listings []*Listing
	for rows.Next() {
		l := &Listing{}
		if err := rows.Scan(&l.ID, &l.StoreID, &l.Title, &l.Description, &l.OriginalPrice, &l.RescuePrice,
			&l.PickupStart, &l.PickupEnd, &l.ExpiresAt, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *postgresRepo) UpdateListingStatus(ctx context.Context, id string, status ListingStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE listings SET status=$1, updated_at=NOW() WHERE id=$2`, status, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("listing %s not found", id)
	}
	return nil
}
