package domain

import "time"

// CartItem is one cart line. Name, image and unit price are a snapshot taken
// when the product was added; they do not follow later catalog changes.
type CartItem struct {
	ID             string    `json:"id,omitempty"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	Image          string    `json:"image,omitempty"`
	UnitPriceCents int64     `json:"-"`
	Quantity       int       `json:"quantity"`
	TotalCents     int64     `json:"-"`
	CreatedAt      time.Time `json:"addedAt,omitzero"`
}

// Cart is the per-user mutable aggregate: an ordered list of lines plus a
// derived total. TotalCents always equals the sum of line totals; every
// mutating method recomputes it.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"-"`
	TotalCents int64      `json:"-"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AddItem merges (productID, quantity) into the cart: if a line for the
// product exists its quantity is incremented, otherwise a new snapshot line
// is appended from the product's current name/price/image.
func (c *Cart) AddItem(p Product, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			c.recalculate()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID:      p.ID,
		Name:           p.Name,
		Image:          p.MainImage(),
		UnitPriceCents: p.PriceCents,
		Quantity:       quantity,
	})
	c.recalculate()
}

// SetQuantity replaces the quantity of an existing line. Returns ErrNotFound
// when the product has no line in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.recalculate()
			return nil
		}
	}
	return ErrNotFound
}

// RemoveItem filters out the line matching productID. Removing an absent
// product is a no-op, matching the original filter semantics.
func (c *Cart) RemoveItem(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.recalculate()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.recalculate()
}

// Item returns the line for productID, or nil.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) recalculate() {
	var total int64
	for i := range c.Items {
		c.Items[i].TotalCents = c.Items[i].UnitPriceCents * int64(c.Items[i].Quantity)
		total += c.Items[i].TotalCents
	}
	c.TotalCents = total
}
