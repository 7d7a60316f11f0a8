package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
	"artifex/pkg/logger"
)

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	populate  populator
	recorder  OrderRecorder
	now       func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	recorder OrderRecorder,
) *OrderUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &OrderUseCase{
		orderRepo: orderRepo,
		populate:  populator{artworkRepo: artworkRepo, userRepo: userRepo},
		recorder:  recorder,
		now:       time.Now,
	}
}

type CreateOrderInput struct {
	UserID          string
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
	Notes           string
}

// CreateOrder checks out the user's cart. Writing the order, marking its
// artworks sold and emptying the cart happen in one transaction.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, errors.BadRequest("Payment method is required", nil)
	}

	order, err := uc.orderRepo.Place(ctx, input.UserID, func(cart *entity.Cart) (*entity.Order, error) {
		return uc.buildOrder(cart, input)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.IncOrderCreated()
	logger.FromContext(ctx).Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("user_id", order.UserID).
		Float64("total", order.Total).
		Msg("order placed")

	return uc.populate.order(ctx, order)
}

func (uc *OrderUseCase) buildOrder(cart *entity.Cart, input CreateOrderInput) (*entity.Order, error) {
	if cart.IsEmpty() {
		return nil, errors.InvalidState("Cart is empty")
	}

	number, err := entity.NewOrderNumber(uc.now())
	if err != nil {
		return nil, errors.Internal("Failed to generate order number", err)
	}

	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, entity.OrderItem{
			ArtworkID: item.ArtworkID,
			Quantity:  item.Quantity,
			Price:     item.PriceAtAdd,
		})
	}

	// Shipping and tax are not charged yet.
	subtotal := cart.Subtotal().Round(2)
	shipping := decimal.Zero
	tax := decimal.Zero
	total := subtotal.Add(shipping).Add(tax)

	return &entity.Order{
		OrderNumber:     number,
		UserID:          cart.UserID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        subtotal.InexactFloat64(),
		ShippingCost:    shipping.InexactFloat64(),
		Tax:             tax.InexactFloat64(),
		Total:           total.InexactFloat64(),
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		Notes:           sanitize(input.Notes),
	}, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*OrderView, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.populate.order(ctx, order)
}

// ListUserOrders returns the user's orders, newest first.
func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID string) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.populate.orders(ctx, orders)
}

// UpdateStatus moves the order forward along its fulfilment path. Setting
// cancelled goes through CancelOrder so the artworks are released.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status, trackingNumber string) (*OrderView, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, errors.BadRequest("Invalid order status", nil)
	}
	if status == entity.OrderStatusCancelled {
		return uc.CancelOrder(ctx, id)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanMoveTo(status) {
		return nil, errors.InvalidState("Cannot change order status from " + order.Status + " to " + status)
	}

	order.Status = status
	if trackingNumber = strings.TrimSpace(trackingNumber); trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return uc.populate.order(ctx, order)
}

// UpdatePaymentStatus records a payment outcome. A paid order is confirmed
// unless it has already shipped, been delivered or been cancelled.
func (uc *OrderUseCase) UpdatePaymentStatus(ctx context.Context, id, paymentStatus, paymentID string) (*OrderView, error) {
	if !entity.IsValidPaymentStatus(paymentStatus) {
		return nil, errors.BadRequest("Invalid payment status", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if paymentStatus == entity.PaymentStatusPaid {
		switch order.Status {
		case entity.OrderStatusCancelled:
			return nil, errors.InvalidState("Cannot mark a cancelled order as paid")
		case entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusProcessing:
			order.Status = entity.OrderStatusConfirmed
		}
	}

	order.PaymentStatus = paymentStatus
	if paymentID = strings.TrimSpace(paymentID); paymentID != "" {
		order.PaymentID = paymentID
	}
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return uc.populate.order(ctx, order)
}

// CancelOrder releases the ordered artworks and marks the order cancelled in
// one transaction. Shipped and delivered orders cannot be cancelled; an order
// that is already cancelled is returned unchanged.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, id string) (*OrderView, error) {
	changed := false
	order, err := uc.orderRepo.Cancel(ctx, id, func(order *entity.Order) (bool, error) {
		changed = false
		if order.Status == entity.OrderStatusCancelled {
			return false, nil
		}
		if !order.IsCancellable() {
			return false, errors.InvalidState("Cannot cancel an order that has been " + order.Status)
		}
		order.Status = entity.OrderStatusCancelled
		changed = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.recorder.IncOrderCancelled()
		logger.FromContext(ctx).Info().
			Str("order_id", order.ID).
			Str("order_number", order.OrderNumber).
			Msg("order cancelled")
	}
	return uc.populate.order(ctx, order)
}
