package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/logging"
	"katalog/internal/models"
	"katalog/internal/server"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "env",
			Usage: "path of an optional .env file",
			Value: ".env",
		}
	}

	cmd := &cli.Command{
		Name:           "katalog",
		Usage:          "product catalog web application",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Flags:  []cli.Flag{envFlag()},
				Action: serveAction,
			},
			{
				Name:   "seed",
				Usage:  "insert sample products",
				Flags:  []cli.Flag{envFlag()},
				Action: seedAction,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("katalog failed", "error", err)
		os.Exit(1)
	}
}

// application is the wired set of long-lived collaborators.
type application struct {
	cfg      *config.Config
	store    *database.Store
	mq       *rabbitmq.Client
	products *services.ProductService
}

// newApplication loads configuration and connects every backing service.
// A database connection failure is returned to the caller, which exits.
func newApplication(ctx context.Context, envFile string) (*application, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.New(cfg.Log)

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, store: store}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.close()
			return nil, err
		}
		a.mq = mq
		publisher = mq
	}

	a.products = services.NewProductService(store.Products, publisher)
	return a, nil
}

func (a *application) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			slog.Warn("failed to close RabbitMQ client", "error", err)
		}
	}
	if err := a.store.Close(ctx); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

func (a *application) newServer() *fiber.App {
	return server.New(server.Dependencies{
		ProductService: a.products,
		DatabaseDriver: a.store.Driver,
		AccessLog:      a.cfg.Log.AccessLog,
	})
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApplication(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.close()

	app := a.newServer()

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", a.cfg.Addr())
		listenErr <- app.Listen(a.cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	slog.Info("server gracefully stopped")
	return nil
}

func seedAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApplication(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.close()

	return seedProducts(ctx, a.products)
}

// seedProducts inserts a few sample products through the service so they
// pass the same validation as client submissions.
func seedProducts(ctx context.Context, svc *services.ProductService) error {
	samples := []struct {
		name, description, category string
		price                       float64
	}{
		{"Laptop", "High performance laptop", "Electronics", 1200.00},
		{"T-Shirt", "Plain cotton t-shirt", "Clothing", 15.00},
		{"The Go Programming Language", "Donovan and Kernighan", "Books", 39.99},
		{"Desk Lamp", "Adjustable LED desk lamp", "Home", 25.00},
		{"Pen", "Blue ink pen", "Other", 1.50},
	}

	var errs []error
	for _, s := range samples {
		in := models.ProductInput{
			Name:        &s.name,
			Description: &s.description,
			Price:       &s.price,
			Category:    &s.category,
		}
		product, err := svc.CreateProduct(ctx, in)
		if err != nil {
			slog.Error("failed to seed product", "name", s.name, "error", err)
			errs = append(errs, err)
			continue
		}
		slog.Info("seeded product", "name", product.Name, "id", product.ID)
	}
	return errors.Join(errs...)
}
