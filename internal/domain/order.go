package domain

import "time"

// OrderStatus is the order lifecycle state. The only legal transitions are
// created -> paid -> delivered; there is no cancellation or refund state.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
)

// OrderItem mirrors CartItem but is immutable once the order is persisted.
type OrderItem struct {
	ID             string `json:"id,omitempty"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	UnitPriceCents int64  `json:"-"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"-"`
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentResult records what the payment provider reported for this order.
type PaymentResult struct {
	IntentID string `json:"id"`
	Status   string `json:"status"`
}

// Order is a snapshot of cart contents plus shipping and payment metadata,
// created once at checkout and never mutated apart from status transitions.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user"`
	Status        OrderStatus     `json:"status"`
	Items         []OrderItem     `json:"orderItems"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	PaymentMethod string          `json:"paymentMethod"`
	ItemsCents    int64           `json:"-"`
	TaxCents      int64           `json:"-"`
	ShippingCents int64           `json:"-"`
	TotalCents    int64           `json:"-"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Payment       *PaymentResult  `json:"paymentResult,omitempty"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsPaid reports whether the order has reached (at least) the paid state.
func (o Order) IsPaid() bool {
	return o.Status == OrderPaid || o.Status == OrderDelivered
}

// IsDelivered reports whether the order has been delivered.
func (o Order) IsDelivered() bool {
	return o.Status == OrderDelivered
}

// MarkPaid transitions created -> paid, recording when and what the provider
// reported. Paying a paid (or delivered) order fails with ErrAlreadyPaid.
func (o *Order) MarkPaid(at time.Time, result PaymentResult) error {
	if o.IsPaid() {
		return ErrAlreadyPaid
	}
	o.Status = OrderPaid
	o.PaidAt = &at
	o.Payment = &result
	return nil
}

// MarkDelivered transitions paid -> delivered. Delivering an unpaid or
// already-delivered order fails with ErrInvalidTransition.
func (o *Order) MarkDelivered(at time.Time) error {
	if o.Status != OrderPaid {
		return ErrInvalidTransition
	}
	o.Status = OrderDelivered
	o.DeliveredAt = &at
	return nil
}

// ItemsTotalCents sums unit price times quantity over all lines.
func ItemsTotalCents(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}
