package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqpAdapter "mocktail/internal/adapter/amqp"
	"mocktail/internal/adapter/device"
	httpAdapter "mocktail/internal/adapter/http"
	"mocktail/internal/adapter/jsonfile"
	"mocktail/internal/adapter/logger"
	"mocktail/internal/adapter/postgres"
	"mocktail/internal/adapter/rabbitmq"
	"mocktail/internal/app/checkout"
	"mocktail/internal/app/recommend"
	"mocktail/internal/config"
	"mocktail/internal/interfaces"
)

func main() {
	mode := flag.String("mode", "order-service", "Service mode: order-service, notification-subscriber")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "info", "Minimum log level: debug, info, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx := context.Background()

	lgr := logger.New(*mode, *logLevel)

	switch *mode {
	case "order-service":
		runOrderService(ctx, cfg, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runOrderService(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	// History backend
	store, closeStore, err := openHistoryStore(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer closeStore()

	// Dispense notifications (optional)
	var notifier interfaces.DispenseNotifier
	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		notifier = rabbitmq.NewPublisher(mqConn)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	// Controller relay
	relay := device.NewClient(cfg.Controller)

	// Services
	checkoutService := checkout.NewService(store, relay, notifier, lgr)
	recommendService := recommend.NewService(store, lgr)

	// HTTP handlers
	checkoutHandler := httpAdapter.NewCheckoutHandler(checkoutService, lgr)
	recommendationHandler := httpAdapter.NewRecommendationHandler(recommendService, cfg.Recommendations.Limit, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout", checkoutHandler.Checkout)
	mux.HandleFunc("/recommendations", recommendationHandler.GetRecommendations)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Order Service started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port":            cfg.Server.Port,
		"history_backend": cfg.History.Backend,
		"controller":      cfg.Controller.BaseURL,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Order Service", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn)
	dispenseHandler := amqpAdapter.NewDispenseHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	go func() {
		if err := consumer.ConsumeDispenses(ctx, dispenseHandler.HandleDispense); err != nil {
			lgr.Error("consumer_error", "Error consuming dispense notifications", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}

func openHistoryStore(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.HistoryStore, func(), error) {
	switch cfg.History.Backend {
	case "file":
		lgr.Info("history_opened", "Using file-backed history store", "startup", map[string]interface{}{
			"path": cfg.History.FilePath,
		})
		return jsonfile.NewHistoryStore(cfg.History.FilePath), func() {}, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})
		return postgres.NewHistoryRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown history backend: %s", cfg.History.Backend)
	}
}
