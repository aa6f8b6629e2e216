package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "storefront/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity"`
}

type updateItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		cart, err := svc.Get(c.Request.Context(), caller.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(*cart))
	}
}

func addCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err := svc.AddItem(c.Request.Context(), caller.ID, req.ProductID, quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(*cart))
	}
}

func updateCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		cart, err := svc.SetQuantity(c.Request.Context(), caller.ID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(*cart))
	}
}

func removeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		cart, err := svc.RemoveItem(c.Request.Context(), caller.ID, c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(*cart))
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		cart, err := svc.Clear(c.Request.Context(), caller.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(*cart))
	}
}
