package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentsvc "storefront/internal/service/payment"
)

type createIntentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

func createIntentHandler(svc *paymentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		var req createIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		clientSecret, err := svc.CreateIntent(c.Request.Context(), caller, req.OrderID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

func paymentStatusHandler(svc *paymentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := currentUser(c)
		o, err := svc.Status(c.Request.Context(), caller, c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{
			"isPaid":        o.IsPaid(),
			"paidAt":        o.PaidAt,
			"paymentResult": o.Payment,
		})
	}
}

// webhookHandler reads the raw body so the signature can be verified over
// the exact bytes the provider signed. Non-2xx responses make the provider
// redeliver, the only retry mechanism in the system.
func webhookHandler(svc *paymentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
		if err != nil {
			respondError(c, err)
			return
		}
		signature := c.GetHeader("Stripe-Signature")
		if err := svc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
