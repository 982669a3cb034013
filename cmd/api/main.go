package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bistroboss/bistro-server/internal/auth"
	"github.com/bistroboss/bistro-server/internal/cart"
	"github.com/bistroboss/bistro-server/internal/catalog"
	"github.com/bistroboss/bistro-server/internal/config"
	"github.com/bistroboss/bistro-server/internal/logging"
	"github.com/bistroboss/bistro-server/internal/payment"
	"github.com/bistroboss/bistro-server/internal/store"
	"github.com/bistroboss/bistro-server/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.MustNewLogger("bistro-api", "unknown").Fatal("config", zap.Error(err))
	}

	log := logging.MustNewLogger("bistro-api", cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := store.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	defer func() { _ = store.Disconnect(client) }()
	log.Info("connected to mongo", zap.String("database", cfg.MongoDatabase))

	db := client.Database(cfg.MongoDatabase)
	users := user.NewMongoRepo(db)
	carts := cart.NewMongoRepo(db)
	payments := payment.NewMongoRepo(db)

	r := buildRouter(deps{
		log:      log,
		tokens:   auth.NewTokenService(cfg.AccessSecret, cfg.TokenTTL),
		users:    users,
		carts:    carts,
		catalog:  catalog.NewMongoRepo(db),
		checkout: payment.NewCheckout(payments, carts),
		intents:  payment.NewStripeIntents(cfg.PaymentSecret),
		currency: cfg.PaymentCurrency,
		ping:     func(ctx context.Context) error { return store.Ping(ctx, client) },
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info("bistro server listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server", zap.Error(err))
	}
	log.Info("server stopped")
}
