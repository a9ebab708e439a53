package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/cart"
	"github.com/rescuebite/rescuebite-backend/internal/modules/catalog"
	"github.com/rescuebite/rescuebite-backend/internal/modules/user"
)

var errRepoNotFound = errors.New("not found")

type stockRow struct {
	available int
	reserved  int
}

// memRepo emulates the postgres repository's atomicity with a single mutex:
// every write takes the lock, checks all its preconditions, and only then
// mutates, so a failed checkout leaves stock untouched.
type memRepo struct {
	mu     sync.Mutex
	stock  map[uuid.UUID]*stockRow
	orders map[uuid.UUID]*Order
	tokens map[string]*PickupToken
	carts  map[uuid.UUID]*cart.Cart
}

func newMemRepo() *memRepo {
	return &memRepo{
		stock:  map[uuid.UUID]*stockRow{},
		orders: map[uuid.UUID]*Order{},
		tokens: map[string]*PickupToken{},
		carts:  map[uuid.UUID]*cart.Cart{},
	}
}

func (r *memRepo) CreateCheckout(ctx context.Context, orders []*Order, reservations []Reservation, cartID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range reservations {
		row, ok := r.stock[res.ListingID]
		if !ok {
			return errRepoNotFound
		}
		if row.available < res.Qty {
			return &apperr.InsufficientStockError{
				ListingID: res.ListingID,
				Requested: res.Qty,
				Available: row.available,
			}
		}
	}
	for _, res := range reservations {
		row := r.stock[res.ListingID]
		row.available -= res.Qty
		row.reserved += res.Qty
	}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
		if o.Token != nil {
			r.tokens[o.Token.TokenHash] = o.Token
		}
	}
	if c, ok := r.carts[cartID]; ok {
		c.Lines = nil
		c.StoreID = nil
		c.Status = cart.CartConverted
	}
	return nil
}

func (r *memRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errRepoNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memRepo) ListOrdersByStore(ctx context.Context, storeID uuid.UUID, status OrderStatus) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if o.StoreID != storeID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memRepo) ListOrdersByConsumer(ctx context.Context, consumerID uuid.UUID) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if o.ConsumerID == consumerID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memRepo) AcceptOrder(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		return errRepoNotFound
	}
	if stored.Status != StatusPending {
		return &apperr.InvalidStateError{Current: string(stored.Status), Attempted: "accept"}
	}
	for _, line := range stored.Lines {
		r.stock[line.ListingID].reserved -= line.Quantity
	}
	stored.Status = StatusAccepted
	return nil
}

func (r *memRepo) RejectOrder(ctx context.Context, o *Order, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		return errRepoNotFound
	}
	if stored.Status != StatusPending {
		return &apperr.InvalidStateError{Current: string(stored.Status), Attempted: "reject"}
	}
	for _, line := range stored.Lines {
		row := r.stock[line.ListingID]
		row.reserved -= line.Quantity
		row.available += line.Quantity
	}
	stored.Status = StatusRejected
	stored.CancelReason = reason
	return nil
}

func (r *memRepo) CancelOrder(ctx context.Context, o *Order, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		return errRepoNotFound
	}
	if stored.Status != StatusAccepted {
		return &apperr.InvalidStateError{Current: string(stored.Status), Attempted: "cancel"}
	}
	for _, line := range stored.Lines {
		r.stock[line.ListingID].available += line.Quantity
	}
	stored.Status = StatusCancelled
	stored.CancelReason = reason
	return nil
}

func (r *memRepo) GetTokenByHash(ctx context.Context, tokenHash string) (*PickupToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, errRepoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memRepo) CompleteOrder(ctx context.Context, orderID uuid.UUID, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[orderID]
	if !ok {
		return errRepoNotFound
	}
	if stored.Status != StatusAccepted {
		return &apperr.InvalidStateError{Current: string(stored.Status), Attempted: "complete"}
	}
	if stored.Token != nil {
		if stored.Token.UsedAt != nil {
			return apperr.ErrTokenUsed
		}
		at := usedAt
		stored.Token.UsedAt = &at
	}
	stored.Status = StatusCompleted
	return nil
}

type memListings struct {
	m map[uuid.UUID]*catalog.Listing
}

func (l *memListings) GetListingByID(ctx context.Context, id string) (*catalog.Listing, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	listing, ok := l.m[uid]
	if !ok {
		return nil, errRepoNotFound
	}
	return listing, nil
}

type memUsers struct{ m map[uuid.UUID]*user.User }

func (u *memUsers) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	usr, ok := u.m[uid]
	if !ok {
		return nil, errRepoNotFound
	}
	return usr, nil
}

type memCarts struct{ repo *memRepo }

func (c *memCarts) GetActiveByConsumer(ctx context.Context, consumerID uuid.UUID) (*cart.Cart, error) {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	for _, ct := range c.repo.carts {
		if ct.ConsumerID == consumerID && ct.Status == cart.CartActive {
			return ct, nil
		}
	}
	return nil, nil
}

// fixture wires a service over the in-memory repo with a controllable clock.
type fixture struct {
	repo     *memRepo
	listings *memListings
	users    *memUsers
	svc      *service
	storeID  uuid.UUID
	consumer *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	listings := &memListings{m: map[uuid.UUID]*catalog.Listing{}}
	users := &memUsers{m: map[uuid.UUID]*user.User{}}
	carts := &memCarts{repo: repo}

	consumer := &user.User{
		ID:        uuid.New(),
		Email:     "anna@example.com",
		FirstName: "Anna",
		LastName:  "Riley",
		Role:      user.RoleConsumer,
	}
	users.m[consumer.ID] = consumer

	svc := NewService(repo, listings, users, carts).(*service)
	return &fixture{
		repo:     repo,
		listings: listings,
		users:    users,
		svc:      svc,
		storeID:  uuid.New(),
		consumer: consumer,
	}
}

func (f *fixture) addListing(title string, rescue, original float64, available int) *catalog.Listing {
	return f.addListingAt(f.storeID, title, rescue, original, available)
}

func (f *fixture) addListingAt(storeID uuid.UUID, title string, rescue, original float64, available int) *catalog.Listing {
	l := &catalog.Listing{
		ID:            uuid.New(),
		StoreID:       storeID,
		Title:         title,
		OriginalPrice: original,
		RescuePrice:   rescue,
		Status:        catalog.ListingActive,
	}
	f.listings.m[l.ID] = l
	f.repo.stock[l.ID] = &stockRow{available: available}
	return l
}

func (f *fixture) addCart(consumerID uuid.UUID, lines ...*cart.Line) *cart.Cart {
	c := &cart.Cart{
		ID:         uuid.New(),
		ConsumerID: consumerID,
		StoreID:    &f.storeID,
		Status:     cart.CartActive,
		Lines:      lines,
	}
	f.repo.carts[c.ID] = c
	return c
}

func pickupWindow() (time.Time, time.Time) {
	start := time.Now().Add(time.Hour)
	return start, start.Add(2 * time.Hour)
}

func TestCreateFromCartReservesStock(t *testing.T) {
	f := newFixture(t)
	bread := f.addListing("Day-old bread box", 4.50, 12.00, 5)
	f.addCart(f.consumer.ID, &cart.Line{ListingID: bread.ID, Quantity: 2})

	start, end := pickupWindow()
	orders, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, end)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, f.storeID, o.StoreID)
	assert.Equal(t, 9.00, o.Total)
	assert.Equal(t, "USD", o.Currency)
	require.NotNil(t, o.Token)
	assert.True(t, o.Token.IsValid(time.Now()))

	row := f.repo.stock[bread.ID]
	assert.Equal(t, 3, row.available)
	assert.Equal(t, 2, row.reserved)
}

func TestCreateFromCartShortfallAbortsWholeCheckout(t *testing.T) {
	f := newFixture(t)
	bread := f.addListing("Bread box", 4.00, 10.00, 5)
	soup := f.addListing("Soup jars", 3.00, 8.00, 1)
	c := f.addCart(f.consumer.ID,
		&cart.Line{ListingID: bread.ID, Quantity: 2},
		&cart.Line{ListingID: soup.ID, Quantity: 3},
	)

	start, end := pickupWindow()
	_, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, end)

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, soup.ID, stockErr.ListingID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	// The sufficient line must not have been reserved either.
	assert.Equal(t, 5, f.repo.stock[bread.ID].available)
	assert.Equal(t, 0, f.repo.stock[bread.ID].reserved)
	assert.Empty(t, f.repo.orders)

	// And the cart survives the failed checkout untouched.
	assert.Equal(t, cart.CartActive, c.Status)
	require.NotNil(t, c.StoreID)
	assert.Equal(t, f.storeID, *c.StoreID)
	assert.Len(t, c.Lines, 2)
}

func TestCreateFromCartMultiStorePartitionsIntoSiblings(t *testing.T) {
	f := newFixture(t)
	storeB := uuid.New()
	bread := f.addListing("Bread box", 4.00, 10.00, 5)
	sushi := f.addListingAt(storeB, "Sushi set", 3.00, 9.00, 5)
	f.addCart(f.consumer.ID,
		&cart.Line{ListingID: bread.ID, Quantity: 1},
		&cart.Line{ListingID: sushi.ID, Quantity: 2},
	)

	start, end := pickupWindow()
	orders, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, end)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byStore := map[uuid.UUID]*Order{}
	for _, o := range orders {
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, f.consumer.ID, o.ConsumerID)
		require.NotNil(t, o.Token)
		byStore[o.StoreID] = o
	}
	require.Contains(t, byStore, f.storeID)
	require.Contains(t, byStore, storeB)
	assert.Equal(t, 4.00, byStore[f.storeID].Total)
	assert.Equal(t, 6.00, byStore[storeB].Total)
	assert.NotEqual(t, byStore[f.storeID].Token.TokenHash, byStore[storeB].Token.TokenHash)

	// Both stores' reservations applied in the one checkout.
	assert.Equal(t, 4, f.repo.stock[bread.ID].available)
	assert.Equal(t, 1, f.repo.stock[bread.ID].reserved)
	assert.Equal(t, 3, f.repo.stock[sushi.ID].available)
	assert.Equal(t, 2, f.repo.stock[sushi.ID].reserved)
}

func TestCreateFromCartConvertsCart(t *testing.T) {
	f := newFixture(t)
	bread := f.addListing("Bread box", 4.00, 10.00, 5)
	c := f.addCart(f.consumer.ID, &cart.Line{ListingID: bread.ID, Quantity: 1})

	start, end := pickupWindow()
	_, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, cart.CartConverted, c.Status)
	assert.Nil(t, c.StoreID)
	assert.Empty(t, c.Lines)
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	f := newFixture(t)
	start, end := pickupWindow()
	_, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, end)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateFromCartInvalidWindow(t *testing.T) {
	f := newFixture(t)
	bread := f.addListing("Bread box", 4.00, 10.00, 5)
	f.addCart(f.consumer.ID, &cart.Line{ListingID: bread.ID, Quantity: 1})

	start, _ := pickupWindow()
	_, err := f.svc.CreateFromCart(context.Background(), f.consumer.ID, start, start)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestConcurrentCheckoutsDoNotOversell(t *testing.T) {
	f := newFixture(t)
	const stock = 10
	const workers = 50
	listing := f.addListing("Pastry box", 2.50, 6.00, stock)

	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateDirect(context.Background(), CreateDirectRequest{
				ListingID:  listing.ID.String(),
				ConsumerID: f.consumer.ID.String(),
				Quantity:   1,
			})
			if err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	won := len(successes)
	assert.Equal(t, stock, won)
	assert.Equal(t, 0, f.repo.stock[listing.ID].available)
	assert.Equal(t, stock, f.repo.stock[listing.ID].reserved)
}

func TestLastUnitGoesToExactlyOneBuyer(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Last sushi set", 5.00, 14.00, 1)

	other := &user.User{ID: uuid.New(), Email: "ben@example.com", Role: user.RoleConsumer}
	f.users.m[other.ID] = other

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, cid := range []uuid.UUID{f.consumer.ID, other.ID} {
		wg.Add(1)
		go func(i int, cid uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateDirect(context.Background(), CreateDirectRequest{
				ListingID:  listing.ID.String(),
				ConsumerID: cid.String(),
				Quantity:   1,
			})
		}(i, cid)
	}
	wg.Wait()

	var stockErr *apperr.InsufficientStockError
	if errs[0] == nil {
		require.ErrorAs(t, errs[1], &stockErr)
	} else {
		require.NoError(t, errs[1])
		require.ErrorAs(t, errs[0], &stockErr)
	}
	assert.Equal(t, 0, f.repo.stock[listing.ID].available)
	assert.Equal(t, 1, f.repo.stock[listing.ID].reserved)
}

func TestAcceptCommitsReservation(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 2)

	accepted, err := f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)

	row := f.repo.stock[listing.ID]
	assert.Equal(t, 2, row.available)
	assert.Equal(t, 0, row.reserved)
}

func TestRejectReleasesReservation(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 2)

	rejected, err := f.svc.Reject(context.Background(), o.ID.String(), "sold out in person")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "sold out in person", rejected.CancelReason)

	row := f.repo.stock[listing.ID]
	assert.Equal(t, 4, row.available)
	assert.Equal(t, 0, row.reserved)
}

func TestCancelRestoresCommittedStock(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 3)

	_, err := f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), o.ID.String(), "consumer no-show")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, "consumer no-show", cancelled.CancelReason)

	row := f.repo.stock[listing.ID]
	assert.Equal(t, 4, row.available)
	assert.Equal(t, 0, row.reserved)
}

func TestInvalidTransitionsRejected(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 10)

	// Cancel before accept.
	o := placeDirect(t, f, listing, 1)
	_, err := f.svc.Cancel(context.Background(), o.ID.String(), "changed my mind")
	var stateErr *apperr.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "PENDING", stateErr.Current)

	// Accept twice.
	_, err = f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)
	_, err = f.svc.Accept(context.Background(), o.ID.String())
	require.ErrorAs(t, err, &stateErr)

	// Reject after accept.
	_, err = f.svc.Reject(context.Background(), o.ID.String(), "nope")
	require.ErrorAs(t, err, &stateErr)

	// Nothing after reject.
	o2 := placeDirect(t, f, listing, 1)
	_, err = f.svc.Reject(context.Background(), o2.ID.String(), "out of stock")
	require.NoError(t, err)
	_, err = f.svc.Accept(context.Background(), o2.ID.String())
	require.ErrorAs(t, err, &stateErr)
}

func TestCompleteViaPickupToken(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 1)
	_, err := f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)

	done, err := f.svc.CompleteViaPickupToken(context.Background(), o.Token.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
	require.NotNil(t, done.Token)
	assert.NotNil(t, done.Token.UsedAt)
}

func TestCompleteRequiresAcceptedOrder(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 1)

	_, err := f.svc.CompleteViaPickupToken(context.Background(), o.Token.TokenHash)
	var stateErr *apperr.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "PENDING", stateErr.Current)

	// A failed scan leaves the order untouched.
	got, err := f.svc.GetOrder(context.Background(), o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestCompleteRejectsUsedToken(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 1)
	_, err := f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)

	_, err = f.svc.CompleteViaPickupToken(context.Background(), o.Token.TokenHash)
	require.NoError(t, err)

	_, err = f.svc.CompleteViaPickupToken(context.Background(), o.Token.TokenHash)
	assert.ErrorIs(t, err, apperr.ErrTokenUsed)
}

func TestCompleteRejectsExpiredToken(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Veggie crate", 3.00, 9.00, 4)
	o := placeDirect(t, f, listing, 1)
	_, err := f.svc.Accept(context.Background(), o.ID.String())
	require.NoError(t, err)

	// Advance the service clock exactly to expiry; the boundary instant is
	// already invalid.
	expiry := o.Token.ExpiresAt
	f.svc.now = func() time.Time { return expiry }

	_, err = f.svc.CompleteViaPickupToken(context.Background(), o.Token.TokenHash)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)

	got, err := f.svc.GetOrder(context.Background(), o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)
}

func TestCompleteUnknownToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CompleteViaPickupToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetQueueProjectsOrders(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Surprise bag", 4.00, 11.00, 4)
	o := placeDirect(t, f, listing, 2)

	queue, err := f.svc.GetQueue(context.Background(), f.storeID.String(), "")
	require.NoError(t, err)
	require.Len(t, queue, 1)

	sum := queue[0]
	assert.Equal(t, o.ID, sum.OrderID)
	assert.Equal(t, StatusPending, sum.Status)
	assert.Equal(t, "Anna Riley", sum.ConsumerName)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, "Surprise bag", sum.Items[0].Title)
	assert.Equal(t, 2, sum.Items[0].Quantity)
	assert.Equal(t, 4.00, sum.Items[0].UnitPrice)
}

func TestGetQueueStatusFilter(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Surprise bag", 4.00, 11.00, 10)
	pending := placeDirect(t, f, listing, 1)
	accepted := placeDirect(t, f, listing, 1)
	_, err := f.svc.Accept(context.Background(), accepted.ID.String())
	require.NoError(t, err)

	queue, err := f.svc.GetQueue(context.Background(), f.storeID.String(), string(StatusPending))
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].OrderID)
}

func TestGetQueueFallbackForDeletedListing(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Surprise bag", 4.00, 11.00, 4)
	o := placeDirect(t, f, listing, 1)
	delete(f.listings.m, listing.ID)

	queue, err := f.svc.GetQueue(context.Background(), f.storeID.String(), "")
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Len(t, queue[0].Items, 1)
	assert.Equal(t, "(unavailable)", queue[0].Items[0].Title)
	assert.Equal(t, 1, queue[0].Items[0].Quantity)
	assert.Equal(t, o.ID, queue[0].OrderID)
}

func TestGetQueuePlaceholderForOrderWithoutLines(t *testing.T) {
	f := newFixture(t)
	o := &Order{
		ID:         uuid.New(),
		ConsumerID: f.consumer.ID,
		StoreID:    f.storeID,
		Status:     StatusPending,
	}
	f.repo.orders[o.ID] = o

	queue, err := f.svc.GetQueue(context.Background(), f.storeID.String(), "")
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Len(t, queue[0].Items, 1)
	assert.Equal(t, "(no items)", queue[0].Items[0].Title)
}

func TestCreateDirectValidation(t *testing.T) {
	f := newFixture(t)
	listing := f.addListing("Surprise bag", 4.00, 11.00, 4)

	_, err := f.svc.CreateDirect(context.Background(), CreateDirectRequest{
		ListingID:  listing.ID.String(),
		ConsumerID: f.consumer.ID.String(),
		Quantity:   0,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	listing.Status = catalog.ListingExpired
	_, err = f.svc.CreateDirect(context.Background(), CreateDirectRequest{
		ListingID:  listing.ID.String(),
		ConsumerID: f.consumer.ID.String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func placeDirect(t *testing.T, f *fixture, listing *catalog.Listing, qty int) *Order {
	t.Helper()
	o, err := f.svc.CreateDirect(context.Background(), CreateDirectRequest{
		ListingID:  listing.ID.String(),
		ConsumerID: f.consumer.ID.String(),
		Quantity:   qty,
	})
	require.NoError(t, err)
	return o
}
