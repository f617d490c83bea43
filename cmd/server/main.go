package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"shop-api/internal/auth"
	gqlctl "shop-api/internal/controllers/graphql"
	httpctl "shop-api/internal/controllers/http"
	"shop-api/internal/infra/geo"
	mmysql "shop-api/internal/infra/mysql"
	"shop-api/internal/infra/rabbitmq"
	"shop-api/internal/infra/rates"
	"shop-api/internal/metrics"
	mysqlrepo "shop-api/internal/repository/mysql"
	"shop-api/internal/services"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewStore(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "shop.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	tokens := auth.NewTokenManager(os.Getenv("JWT_SECRET"), auth.DefaultTokenTTL)

	geoClient := geo.NewClient(
		envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		envOr("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		5*time.Second,
	)
	ratesClient := rates.NewClient(envOr("RATES_URL", "https://api.frankfurter.app"), 5*time.Second)

	authSvc := services.NewAuthService(store, tokens, os.Getenv("ADMIN_SECRET"))
	userSvc := services.NewUserService(store)
	productSvc := services.NewProductService(store)
	productSvc.SetRedisClient(redisClient)
	cartSvc := services.NewCartService(store)
	checkoutSvc := services.NewCheckoutService(store, publisher)
	checkoutSvc.SetMetrics(metrics.NewCheckoutMetrics())
	orderSvc := services.NewOrderService(store, publisher)
	reviewSvc := services.NewReviewService(store)
	pickupSvc := services.NewPickupService(store, geoClient)

	go func() {
		time.Sleep(5 * time.Second)
		if err := productSvc.WarmupCache(context.Background()); err != nil {
			log.Printf("Failed to warm up product cache: %v", err)
		} else {
			log.Println("Product cache warmed up")
		}
	}()

	handler := httpctl.NewHandler(tokens, httpctl.Services{
		Auth:     authSvc,
		Users:    userSvc,
		Products: productSvc,
		Carts:    cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Reviews:  reviewSvc,
		Pickups:  pickupSvc,
		Rates:    ratesClient,
	})

	schema, err := gqlctl.NewSchema(gqlctl.Services{
		Auth:     authSvc,
		Users:    userSvc,
		Products: productSvc,
		Carts:    cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Reviews:  reviewSvc,
		Pickups:  pickupSvc,
		Rates:    ratesClient,
		Geo:      geoClient,
	})
	if err != nil {
		log.Fatalf("graphql: schema: %v", err)
	}

	serverMetrics := metrics.NewServerMetrics()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(serverMetrics.GinMiddleware())

	handler.RegisterRoutes(r)
	r.Any("/graphql", httpctl.OptionalAuth(tokens, authSvc), gqlctl.NewGinHandler(schema))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	port := envOr("PORT", "8080")
	srv := &http.Server{Addr: ":" + port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting shop API on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
