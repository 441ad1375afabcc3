package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andreasstove999/storefront/internal/address"
	"github.com/andreasstove999/storefront/internal/cart"
	"github.com/andreasstove999/storefront/internal/catalog"
	"github.com/andreasstove999/storefront/internal/checkout"
	"github.com/andreasstove999/storefront/internal/config"
	httpserver "github.com/andreasstove999/storefront/internal/http"
	"github.com/andreasstove999/storefront/internal/kv"
	"github.com/andreasstove999/storefront/internal/orders"
	"github.com/andreasstove999/storefront/internal/review"
	"github.com/andreasstove999/storefront/internal/session"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	store := kv.NewRedis(redisClient)
	book := address.NewBook(store)
	reviews := review.NewStore(store)

	rabbitConn := orders.MustDialRabbit(cfg.RabbitMQURL)
	defer rabbitConn.Close()

	submitter, err := orders.NewRabbitSubmitter(rabbitConn)
	if err != nil {
		logger.Fatalf("failed to create order submitter: %v", err)
	}

	catalogClient := catalog.NewClient(cfg.CatalogURL, &http.Client{Timeout: 10 * time.Second})

	sessions := session.NewManager(func(c *cart.Store) *checkout.Machine {
		// checkout success clears the owning cart, not the machine itself
		return checkout.NewMachine(c, submitter, book, cfg.SubmitTimeout, func(p *orders.Payload) {
			c.Clear()
			logger.Printf("order %s completed, total %.2f", p.OrderID, p.Total)
		})
	})

	mux := httpserver.NewRouter(logger, sessions, book, reviews, catalogClient, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := submitter.Close(); err != nil {
		logger.Printf("submitter close error: %v", err)
	}
}
