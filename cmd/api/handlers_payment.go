package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistro-server/internal/auth"
	"github.com/bistroboss/bistro-server/internal/payment"
)

func createPaymentIntentHandler(intents payment.IntentClient, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Price decimal.Decimal `json:"price"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Price.IsZero() || in.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}
		secret, err := intents.CreateIntent(c.Request.Context(), payment.MinorUnits(in.Price), currency)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
	}
}

type checkoutRequest struct {
	Email         string          `json:"email"`
	Price         decimal.Decimal `json:"price"`
	TransactionID string          `json:"transactionId"`
	CartItems     []string        `json:"cartItems"`
}

// checkoutHandler records the completed charge and reconciles the cart.
// Partial cart cleanup is reported in the body, never as a request failure:
// the charge is already final by then.
func checkoutHandler(checkout *payment.Checkout, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		var in checkoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if in.Email != "" && in.Email != claims.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		ids := make([]primitive.ObjectID, 0, len(in.CartItems))
		for _, raw := range in.CartItems {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
				return
			}
			ids = append(ids, id)
		}

		res, err := checkout.Finalize(c.Request.Context(), &payment.Payment{
			Email:         claims.Email,
			Amount:        payment.MinorUnits(in.Price),
			Currency:      currency,
			CartItemIDs:   ids,
			TransactionID: in.TransactionID,
		})
		if err != nil {
			if errors.Is(err, payment.ErrInvalidPayment) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}
