package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/handler"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/memory"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/sqlite"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/telemetry"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/whatsapp"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		telemetry.ServiceVersion = Version
		telem, err := telemetry.New(&cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := telem.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error shutting down telemetry: %v\n", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, telem)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// sessionStores are the per-session and order backends selected by
// storage.driver
type sessionStores struct {
	storage domain.SessionStorage
	orders  domain.OrderRepository
	contact domain.ContactRepository
	close   func() error
}

func openStores(cfg *config.StorageConfig, logger *slog.Logger) (*sessionStores, error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("Using SQLite storage", slog.String("path", db.Path()))
		return &sessionStores{
			storage: sqlite.NewSessionStorage(db),
			orders:  sqlite.NewOrderRepository(db),
			contact: sqlite.NewContactRepository(db),
			close:   db.Close,
		}, nil
	default:
		logger.Info("Using in-memory storage")
		return &sessionStores{
			storage: memory.NewSessionStorage(),
			orders:  memory.NewOrderRepository(),
			contact: memory.NewContactRepository(),
			close:   func() error { return nil },
		}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config, telem *telemetry.Telemetry) error {
	tracer := telem.TracerProvider.Tracer("storefront-api")
	meter := telem.MeterProvider.Meter("storefront-api")
	logger := telem.Logger

	logger.Info("Starting storefront API", slog.String("version", Version))

	stores, err := openStores(&cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.close(); err != nil {
			logger.Error("Error closing storage", slog.String("error", err.Error()))
		}
	}()

	catalogs, err := newCatalogRepos(ctx, logger, memory.NewProductRepository(tracer, logger))
	if err != nil {
		return err
	}

	store := storeSettings(&cfg.Store)
	links := whatsapp.NewLinkBuilder(cfg.Store.WhatsAppPhone)

	productService := service.NewProductService(catalogs.products, catalogs.categories, store, tracer, meter, logger)
	cartService := service.NewCartService(stores.storage, catalogs.products, stores.orders, links, store, tracer, meter, logger)
	favoritesService := service.NewFavoritesService(stores.storage, tracer, meter, logger)
	authService := service.NewAuthService(stores.storage, store, tracer, meter, logger)
	orderService := service.NewOrderService(stores.orders, tracer, meter, logger)
	offerService := service.NewOfferService(catalogs.offers, catalogs.products, cartService, tracer, meter, logger)
	contactService := service.NewContactService(stores.contact, links, tracer, meter, logger)

	server := http.NewServer(cfg, http.Handlers{
		Products:  handler.NewProductHandler(productService, logger),
		Cart:      handler.NewCartHandler(cartService, handler.NewCartWidget(store.Currency), logger),
		Favorites: handler.NewFavoritesHandler(favoritesService, logger),
		Auth:      handler.NewAuthHandler(authService, logger),
		Orders:    handler.NewOrderHandler(orderService, logger),
		Offers:    handler.NewOfferHandler(offerService, logger),
		Contact:   handler.NewContactHandler(contactService, logger),
	}, logger, telem)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
