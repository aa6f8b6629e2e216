package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type orderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	OrderItems      []orderItemRequest     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal        `json:"itemsPrice"`
	TaxPrice        decimal.Decimal        `json:"taxPrice"`
	ShippingPrice   decimal.Decimal        `json:"shippingPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

type payOrderRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status"`
}

func (r createOrderRequest) toInput() (ordersvc.CreateInput, error) {
	in := ordersvc.CreateInput{
		Shipping:      r.ShippingAddress,
		PaymentMethod: r.PaymentMethod,
	}
	var err error
	if in.ItemsCents, err = decimalToCents(r.ItemsPrice); err != nil {
		return in, err
	}
	if in.TaxCents, err = decimalToCents(r.TaxPrice); err != nil {
		return in, err
	}
	if in.ShippingCents, err = decimalToCents(r.ShippingPrice); err != nil {
		return in, err
	}
	if in.TotalCents, err = decimalToCents(r.TotalPrice); err != nil {
		return in, err
	}
	for _, item := range r.OrderItems {
		cents, err := decimalToCents(item.Price)
		if err != nil {
			return in, err
		}
		in.Items = append(in.Items, ordersvc.ItemInput{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Image:          item.Image,
			UnitPriceCents: cents,
			Quantity:       item.Quantity,
		})
	}
	return in, nil
}

func createOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondError(c, err)
			return
		}
		o, err := svc.Create(c.Request.Context(), caller.ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, toOrderResponse(*o))
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		o, err := svc.Get(c.Request.Context(), caller, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toOrderResponse(*o))
	}
}

func payOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req payOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		o, err := svc.Pay(c.Request.Context(), caller, c.Param("id"), domain.PaymentResult{
			IntentID: req.ID,
			Status:   req.Status,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toOrderResponse(*o))
	}
}

func deliverOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Deliver(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toOrderResponse(*o))
	}
}

func myOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		orders, err := svc.ListMine(c.Request.Context(), caller.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toOrderResponses(orders))
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toOrderResponses(orders))
	}
}
