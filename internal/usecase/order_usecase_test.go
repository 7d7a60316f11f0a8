package usecase

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifex/internal/domain/entity"
	"artifex/pkg/errors"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{9}$`)

func checkoutInput(userID string) CreateOrderInput {
	return CreateOrderInput{
		UserID: userID,
		ShippingAddress: entity.ShippingAddress{
			FullName:     "Ada Buyer",
			AddressLine1: "1 Gallery Road",
			City:         "Lisbon",
			PostalCode:   "1000-001",
			Country:      "PT",
		},
		PaymentMethod: "card",
	}
}

// placeOrder fills the buyer's cart with the given artworks and checks out.
func placeOrder(t *testing.T, e *env, uc *OrderUseCase, buyer string, artworks ...*entity.Artwork) *OrderView {
	t.Helper()
	ctx := context.Background()
	cart := e.cartUseCase()
	for _, a := range artworks {
		_, err := cart.AddItem(ctx, buyer, a.ID, 1)
		require.NoError(t, err)
	}
	order, err := uc.CreateOrder(ctx, checkoutInput(buyer))
	require.NoError(t, err)
	return order
}

func TestCreateOrderFromCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	buyer := e.seedUser(t, "buyer", entity.UserTypeCollector)
	a := e.seedArtwork(t, "artist", "a", 120.10)
	b := e.seedArtwork(t, "artist", "b", 30.20)
	uc := e.orderUseCase()

	_, err := e.cartUseCase().AddItem(ctx, buyer.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = e.cartUseCase().AddItem(ctx, buyer.ID, b.ID, 1)
	require.NoError(t, err)

	order, err := uc.CreateOrder(ctx, checkoutInput(buyer.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 270.40, order.Subtotal)
	assert.Zero(t, order.ShippingCost)
	assert.Zero(t, order.Tax)
	assert.Equal(t, 270.40, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 120.10, order.Items[0].Price)
	require.NotNil(t, order.Items[0].Artwork)
	require.NotNil(t, order.User)
	assert.Equal(t, buyer.Email, order.User.Email)

	assert.False(t, e.artwork(t, a.ID).Available)
	assert.False(t, e.artwork(t, b.ID).Available)

	cart, err := e.carts.GetByUserID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 1, e.recorder.created)
}

func TestCreateOrderWithEmptyCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()

	_, err := uc.CreateOrder(ctx, checkoutInput("nobody"))
	requireCode(t, err, errors.CodeInvalidState)

	_, err = e.cartUseCase().GetCart(ctx, "buyer")
	require.NoError(t, err)
	_, err = uc.CreateOrder(ctx, checkoutInput("buyer"))
	requireCode(t, err, errors.CodeInvalidState)

	orders, err := uc.ListUserOrders(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, e.recorder.created)
}

func TestConcurrentCheckoutOfOneCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()
	art := e.seedArtwork(t, "artist", "a", 40)

	_, err := e.cartUseCase().AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)

	const attempts = 2
	errs := make([]error, attempts)
	var start, wg sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			_, errs[i] = uc.CreateOrder(ctx, checkoutInput("buyer"))
		}(i)
	}
	start.Done()
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireCode(t, err, errors.CodeInvalidState)
	}
	assert.Equal(t, 1, succeeded)

	orders, err := e.orders.ListByUser(ctx, "buyer")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 1, e.recorder.created)
	assert.False(t, e.artwork(t, art.ID).Available)
}

func TestCreateOrderRequiresPaymentMethod(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	art := e.seedArtwork(t, "artist", "a", 10)
	_, err := e.cartUseCase().AddItem(context.Background(), "buyer", art.ID, 1)
	require.NoError(t, err)

	input := checkoutInput("buyer")
	input.PaymentMethod = "  "
	_, err = e.orderUseCase().CreateOrder(context.Background(), input)
	requireCode(t, err, errors.CodeInvalidArgument)
	assert.True(t, e.artwork(t, art.ID).Available)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	uc := e.orderUseCase()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		art := e.seedArtwork(t, "artist", "piece", 1)
		order := placeOrder(t, e, uc, "buyer", art)
		assert.False(t, seen[order.OrderNumber], "duplicate %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestListUserOrdersNewestFirst(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	uc := e.orderUseCase()

	first := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", "a", 1))
	second := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", "b", 1))
	placeOrder(t, e, uc, "someone-else", e.seedArtwork(t, "artist", "c", 1))

	orders, err := uc.ListUserOrders(context.Background(), "buyer")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestCancelOrderReleasesArtworks(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()
	art := e.seedArtwork(t, "artist", "a", 10)
	order := placeOrder(t, e, uc, "buyer", art)
	require.False(t, e.artwork(t, art.ID).Available)

	cancelled, err := uc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.True(t, e.artwork(t, art.ID).Available)
	assert.Equal(t, 1, e.recorder.cancelled)

	again, err := uc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, again.Status)
	assert.Equal(t, 1, e.recorder.cancelled)

	_, err = uc.CancelOrder(ctx, "missing")
	requireCode(t, err, errors.CodeNotFound)
}

func TestCancelShippedOrDeliveredOrder(t *testing.T) {
	t.Parallel()
	for _, status := range []string{entity.OrderStatusShipped, entity.OrderStatusDelivered} {
		status := status
		t.Run(status, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			ctx := context.Background()
			uc := e.orderUseCase()
			art := e.seedArtwork(t, "artist", "a", 10)
			order := placeOrder(t, e, uc, "buyer", art)

			_, err := uc.UpdateStatus(ctx, order.ID, status, "TRK-1")
			require.NoError(t, err)

			_, err = uc.CancelOrder(ctx, order.ID)
			requireCode(t, err, errors.CodeInvalidState)

			stored, err := uc.GetOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
			assert.False(t, e.artwork(t, art.ID).Available)
			assert.Zero(t, e.recorder.cancelled)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()
	art := e.seedArtwork(t, "artist", "a", 10)
	order := placeOrder(t, e, uc, "buyer", art)

	_, err := uc.UpdateStatus(ctx, order.ID, "lost", "")
	requireCode(t, err, errors.CodeInvalidArgument)

	updated, err := uc.UpdateStatus(ctx, order.ID, entity.OrderStatusShipped, "TRK-42")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, updated.Status)
	assert.Equal(t, "TRK-42", updated.TrackingNumber)

	_, err = uc.UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing, "")
	requireCode(t, err, errors.CodeInvalidState)

	updated, err = uc.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, "TRK-42", updated.TrackingNumber)

	_, err = uc.UpdateStatus(ctx, "missing", entity.OrderStatusShipped, "")
	requireCode(t, err, errors.CodeNotFound)
}

func TestUpdateStatusToCancelledReleasesArtworks(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	uc := e.orderUseCase()
	art := e.seedArtwork(t, "artist", "a", 10)
	order := placeOrder(t, e, uc, "buyer", art)

	updated, err := uc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
	assert.True(t, e.artwork(t, art.ID).Available)
}

func TestUpdatePaymentStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()

	order := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", "a", 10))

	_, err := uc.UpdatePaymentStatus(ctx, order.ID, "maybe", "")
	requireCode(t, err, errors.CodeInvalidArgument)

	paid, err := uc.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusPaid, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, paid.Status)
	assert.Equal(t, "pay_123", paid.PaymentID)

	failed, err := uc.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusFailed, "")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, failed.PaymentStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, failed.Status)
	assert.Equal(t, "pay_123", failed.PaymentID)
}

func TestUpdatePaymentStatusPaidConfirmsOpenOrders(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()

	for i, status := range []string{entity.OrderStatusConfirmed, entity.OrderStatusProcessing} {
		order := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", status+string(rune('a'+i)), 10))
		_, err := uc.UpdateStatus(ctx, order.ID, status, "")
		require.NoError(t, err)

		paid, err := uc.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusPaid, "")
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusConfirmed, paid.Status, "from %s", status)
		assert.Equal(t, entity.PaymentStatusPaid, paid.PaymentStatus)

		stored, err := e.orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusConfirmed, stored.Status)
	}
}

func TestUpdatePaymentStatusKeepsLaterStatuses(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.orderUseCase()

	shipped := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", "a", 10))
	_, err := uc.UpdateStatus(ctx, shipped.ID, entity.OrderStatusShipped, "")
	require.NoError(t, err)

	paid, err := uc.UpdatePaymentStatus(ctx, shipped.ID, entity.PaymentStatusPaid, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, paid.Status)


	cancelled := placeOrder(t, e, uc, "buyer", e.seedArtwork(t, "artist", "b", 10))
	_, err = uc.CancelOrder(ctx, cancelled.ID)
	require.NoError(t, err)

	_, err = uc.UpdatePaymentStatus(ctx, cancelled.ID, entity.PaymentStatusPaid, "")
	requireCode(t, err, errors.CodeInvalidState)

	refunded, err := uc.UpdatePaymentStatus(ctx, cancelled.ID, entity.PaymentStatusRefunded, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, refunded.Status)
}
