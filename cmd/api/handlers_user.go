package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistro-server/internal/user"
)

func listUsersHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// createUserHandler registers a user on first sign-in. Re-posting the same
// email is not an error, just a no-op.
func createUserHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u user.User
		if err := c.ShouldBindJSON(&u); err != nil || u.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		u.Role = user.RoleCustomer
		if err := users.Create(c.Request.Context(), &u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func makeAdminHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		if err := users.Promote(c.Request.Context(), id); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
	}
}
