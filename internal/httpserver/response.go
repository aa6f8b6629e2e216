package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"
)

// Every endpoint answers with the flat envelope the clients expect:
// {"status":"success","data":...} or {"status":"fail","message":...}.

func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func failBody(message string) gin.H {
	return gin.H{"status": "fail", "message": message}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), failBody(err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, ordersvc.ErrPriceMismatch),
		errors.Is(err, productsvc.ErrAlreadyReviewed):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// Money crosses the API boundary as a decimal amount; internally everything
// is integer cents.

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func decimalToCents(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, errors.New("amount has more than two decimal places")
	}
	if shifted.IsNegative() {
		return 0, errors.New("amount must not be negative")
	}
	return shifted.IntPart(), nil
}

type productResponse struct {
	domain.Product
	Price decimal.Decimal `json:"price"`
}

func toProductResponse(p domain.Product) productResponse {
	if p.Images == nil {
		p.Images = []string{}
	}
	return productResponse{Product: p, Price: centsToDecimal(p.PriceCents)}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type cartItemResponse struct {
	domain.CartItem
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type cartResponse struct {
	domain.Cart
	Items      []cartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			CartItem:   item,
			Price:      centsToDecimal(item.UnitPriceCents),
			TotalPrice: centsToDecimal(item.TotalCents),
		})
	}
	return cartResponse{
		Cart:       cart,
		Items:      items,
		TotalPrice: centsToDecimal(cart.TotalCents),
	}
}

type orderItemResponse struct {
	domain.OrderItem
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type orderResponse struct {
	domain.Order
	Items         []orderItemResponse `json:"orderItems"`
	IsPaid        bool                `json:"isPaid"`
	IsDelivered   bool                `json:"isDelivered"`
	ItemsPrice    decimal.Decimal     `json:"itemsPrice"`
	TaxPrice      decimal.Decimal     `json:"taxPrice"`
	ShippingPrice decimal.Decimal     `json:"shippingPrice"`
	TotalPrice    decimal.Decimal     `json:"totalPrice"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			OrderItem:  item,
			Price:      centsToDecimal(item.UnitPriceCents),
			TotalPrice: centsToDecimal(item.TotalCents),
		})
	}
	return orderResponse{
		Order:         o,
		Items:         items,
		IsPaid:        o.IsPaid(),
		IsDelivered:   o.IsDelivered(),
		ItemsPrice:    centsToDecimal(o.ItemsCents),
		TaxPrice:      centsToDecimal(o.TaxCents),
		ShippingPrice: centsToDecimal(o.ShippingCents),
		TotalPrice:    centsToDecimal(o.TotalCents),
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
