package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productsvc "storefront/internal/service/product"
)

type productRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	CountInStock int             `json:"countInStock"`
	Images       []string        `json:"images"`
	Featured     bool            `json:"featuredProduct"`
}

func (r productRequest) toInput() (productsvc.Input, error) {
	cents, err := decimalToCents(r.Price)
	if err != nil {
		return productsvc.Input{}, err
	}
	return productsvc.Input{
		Name:         r.Name,
		Description:  r.Description,
		Brand:        r.Brand,
		Category:     r.Category,
		PriceCents:   cents,
		Currency:     r.Currency,
		CountInStock: r.CountInStock,
		Images:       r.Images,
		Featured:     r.Featured,
	}, nil
}

func listProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toProductResponses(products))
	}
}

func getProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toProductResponse(*p))
	}
}

func createProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondError(c, err)
			return
		}
		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, toProductResponse(*p))
	}
}

func updateProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondError(c, err)
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, toProductResponse(*p))
	}
}

func deleteProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{"deleted": true})
	}
}

func createReviewHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req productsvc.ReviewInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		p, err := svc.AddReview(c.Request.Context(), c.Param("id"), caller, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, toProductResponse(*p))
	}
}
