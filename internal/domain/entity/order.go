package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// statusRank orders the forward fulfilment path. Cancelled is not on it.
var statusRank = map[string]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func IsValidOrderStatus(s string) bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type OrderItem struct {
	ArtworkID string  `json:"artworkId" firestore:"artworkId"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Price     float64 `json:"price" firestore:"price"`
}

type ShippingAddress struct {
	FullName     string `json:"fullName" firestore:"fullName" validate:"required"`
	AddressLine1 string `json:"addressLine1" firestore:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2" firestore:"addressLine2"`
	City         string `json:"city" firestore:"city" validate:"required"`
	State        string `json:"state" firestore:"state"`
	PostalCode   string `json:"postalCode" firestore:"postalCode" validate:"required"`
	Country      string `json:"country" firestore:"country" validate:"required"`
	Phone        string `json:"phone" firestore:"phone"`
}

type Order struct {
	ID              string          `json:"id" firestore:"id"`
	OrderNumber     string          `json:"orderNumber" firestore:"orderNumber"`
	UserID          string          `json:"userId" firestore:"userId"`
	Items           []OrderItem     `json:"items" firestore:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" firestore:"shippingAddress"`
	Subtotal        float64         `json:"subtotal" firestore:"subtotal"`
	ShippingCost    float64         `json:"shippingCost" firestore:"shippingCost"`
	Tax             float64         `json:"tax" firestore:"tax"`
	Total           float64         `json:"total" firestore:"total"`
	Status          string          `json:"status" firestore:"status"`
	PaymentStatus   string          `json:"paymentStatus" firestore:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod" firestore:"paymentMethod"`
	PaymentID       string          `json:"paymentId,omitempty" firestore:"paymentId"`
	TrackingNumber  string          `json:"trackingNumber,omitempty" firestore:"trackingNumber"`
	Notes           string          `json:"notes,omitempty" firestore:"notes"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// IsCancellable reports whether the order can still be cancelled. Shipped and
// delivered orders cannot.
func (o *Order) IsCancellable() bool {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered:
		return false
	}
	return true
}

// CanMoveTo reports whether status is reachable from the current status on
// the forward path. Staying on the same status is allowed; leaving delivered
// or cancelled is not.
func (o *Order) CanMoveTo(status string) bool {
	if o.Status == status {
		return true
	}
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusDelivered {
		return false
	}
	from, ok := statusRank[o.Status]
	if !ok {
		return false
	}
	to, ok := statusRank[status]
	if !ok {
		return false
	}
	return to > from
}

// ArtworkIDs returns each referenced artwork once, in item order.
func (o *Order) ArtworkIDs() []string {
	ids := make([]string, 0, len(o.Items))
	seen := make(map[string]struct{}, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ArtworkID]; ok {
			continue
		}
		seen[item.ArtworkID] = struct{}{}
		ids = append(ids, item.ArtworkID)
	}
	return ids
}

const (
	orderNumberPrefix    = "ORD"
	orderNumberSuffixLen = 9
	orderNumberAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewOrderNumber builds ORD-<unix millis>-<9 uppercase base36 chars>.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, orderNumberSuffixLen)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate order number: %w", err)
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, now.UnixMilli(), suffix), nil
}
