package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bistroboss/bistro-server/internal/auth"
	"github.com/bistroboss/bistro-server/internal/cart"
	"github.com/bistroboss/bistro-server/internal/catalog"
	"github.com/bistroboss/bistro-server/internal/httpx"
	"github.com/bistroboss/bistro-server/internal/payment"
	"github.com/bistroboss/bistro-server/internal/user"
)

type deps struct {
	log      *zap.Logger
	tokens   *auth.TokenService
	users    user.Repository
	carts    cart.Repository
	catalog  catalog.Repository
	checkout *payment.Checkout
	intents  payment.IntentClient
	currency string
	ping     func(ctx context.Context) error
}

func buildRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(d.log))

	authed := auth.Authenticated(d.tokens)
	admin := auth.AdminOnly(d.users)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bistro Boss Server Running")
	})
	r.GET("/healthz", func(c *gin.Context) {
		if d.ping != nil {
			if err := d.ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
		}
		c.String(http.StatusOK, "ok")
	})

	r.POST("/jwt", issueTokenHandler(d.tokens))
	r.GET("/admin/:email", authed, adminStatusHandler(d.users))

	r.GET("/menu", listMenuHandler(d.catalog))
	r.POST("/menu", authed, admin, addMenuItemHandler(d.catalog))
	r.DELETE("/menu/:id", authed, admin, removeMenuItemHandler(d.catalog))

	r.GET("/reviews", listReviewsHandler(d.catalog))
	r.GET("/recommends", listRecommendsHandler(d.catalog))

	r.GET("/users", authed, admin, listUsersHandler(d.users))
	r.POST("/users", createUserHandler(d.users))
	r.PATCH("/makeAdmin/:id", authed, admin, makeAdminHandler(d.users))

	r.GET("/carts", authed, listCartHandler(d.carts))
	r.POST("/carts", authed, addCartItemHandler(d.carts))
	r.DELETE("/carts/:id", authed, removeCartItemHandler(d.carts))

	r.POST("/create-payment-intent", authed, createPaymentIntentHandler(d.intents, d.currency))
	r.POST("/payment", authed, checkoutHandler(d.checkout, d.currency))

	return r
}
