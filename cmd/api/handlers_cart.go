package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistro-server/internal/auth"
	"github.com/bistroboss/bistro-server/internal/cart"
)

func listCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		email := c.Query("email")
		if email == "" {
			// anonymous caller has no cart
			c.JSON(http.StatusOK, []cart.Item{})
			return
		}
		if claims == nil || claims.Email != email {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		items, err := carts.ListByOwner(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func addCartItemHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		var it cart.Item
		if err := c.ShouldBindJSON(&it); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if it.Email != "" && it.Email != claims.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		it.Email = claims.Email
		if err := carts.Add(c.Request.Context(), &it); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

// removeCartItemHandler verifies ownership before deleting. An id that is
// already gone counts as deleted (idempotent delete-by-id), a foreign owner
// is a hard 403.
func removeCartItemHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		it, err := carts.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, cart.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"deletedCount": 0})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if it.Email != claims.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		deleted, err := carts.Remove(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		count := 0
		if deleted {
			count = 1
		}
		c.JSON(http.StatusOK, gin.H{"deletedCount": count})
	}
}
