package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
	} else {
		log.Println("KAFKA_BROKERS not set, domain events disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		log.Println("ES_URL not set, search disabled")
	}

	gormRepo := &repo.GormRepo{DB: database}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		UserHandler:    &httpserver.UserHTTP{Svc: authSvc, Producer: producer},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Auth: authSvc, Producer: producer},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		UploadHandler:  &httpserver.UploadHTTP{Dir: cfg.UploadDir},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex},
		JWTSecret:      cfg.JWTSecret,
		UploadDir:      cfg.UploadDir,
		PayPalClientID: cfg.PayPalClientID,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("storefront stopped")
}
