package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ArtworkID  string  `json:"artworkId" firestore:"artworkId"`
	Quantity   int     `json:"quantity" firestore:"quantity"`
	PriceAtAdd float64 `json:"priceAtAdd" firestore:"priceAtAdd"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.PriceAtAdd).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is keyed by its owner: ID always equals UserID.
type Cart struct {
	ID        string     `json:"id" firestore:"id"`
	UserID    string     `json:"userId" firestore:"userId"`
	Items     []CartItem `json:"items" firestore:"items"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        userID,
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Subtotal sums priceAtAdd × quantity over every line.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

func (c *Cart) Total() float64 {
	return c.Subtotal().Round(2).InexactFloat64()
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Find(artworkID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ArtworkID == artworkID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add merges quantity into the existing line for artworkID, or appends a new
// line priced at price. The price of an existing line is never changed.
func (c *Cart) Add(artworkID string, quantity int, price float64) {
	if item := c.Find(artworkID); item != nil {
		item.Quantity += quantity
		return
	}
	c.Items = append(c.Items, CartItem{
		ArtworkID:  artworkID,
		Quantity:   quantity,
		PriceAtAdd: price,
	})
}

// Remove drops the line for artworkID if present.
func (c *Cart) Remove(artworkID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ArtworkID != artworkID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// ArtworkIDs returns each referenced artwork once, in line order.
func (c *Cart) ArtworkIDs() []string {
	ids := make([]string, 0, len(c.Items))
	seen := make(map[string]struct{}, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.ArtworkID]; ok {
			continue
		}
		seen[item.ArtworkID] = struct{}{}
		ids = append(ids, item.ArtworkID)
	}
	return ids
}
