package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bistroboss/bistro-server/internal/auth"
	"github.com/bistroboss/bistro-server/internal/user"
)

func issueTokenHandler(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		token, err := tokens.Issue(in.Email, in.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// adminStatusHandler lets a caller ask about their own admin status only.
// A mismatched email is answered with admin=false rather than an error.
func adminStatusHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		email := c.Param("email")
		if claims == nil || claims.Email != email {
			c.JSON(http.StatusOK, gin.H{"admin": false})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"admin": false})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": u.IsAdmin()})
	}
}
