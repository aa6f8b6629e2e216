package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller is neither the owner nor an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrOutOfStock indicates the requested quantity exceeds countInStock.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrEmptyOrder indicates an order was submitted with no items.
	ErrEmptyOrder = errors.New("no order items")
	// ErrAlreadyPaid indicates a payment was attempted on a paid order.
	ErrAlreadyPaid = errors.New("order is already paid")
	// ErrInvalidSignature indicates a webhook payload failed verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrInvalidTransition indicates an illegal order status change.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
