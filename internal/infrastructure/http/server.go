package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/handler"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/http/middleware"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Handlers groups the storefront's HTTP handlers
type Handlers struct {
	Products  *handler.ProductHandler
	Cart      *handler.CartHandler
	Favorites *handler.FavoritesHandler
	Auth      *handler.AuthHandler
	Orders    *handler.OrderHandler
	Offers    *handler.OfferHandler
	Contact   *handler.ContactHandler
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	config     *config.Config
	handlers   Handlers
	logger     *slog.Logger
	telemetry  *telemetry.Telemetry
	httpServer *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	handlers Handlers,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		handlers:  handlers,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(middleware.HTTPRouteContext())

	meter := s.telemetry.MeterProvider.Meter("storefront-api")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	if s.config.Telemetry.MillisecondHistogram {
		s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
	}
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Products.ListCategories)
		r.Get("/search", h.Products.SearchCategories)
	})

	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", h.Products.ListProducts)
		r.Get("/featured", h.Products.Featured)
		r.Get("/{slug}", h.Products.GetProduct)
	})

	s.router.Get("/offers", h.Offers.List)

	s.router.Post("/contact", h.Contact.Submit)
	s.router.Post("/newsletter", h.Contact.Subscribe)

	// Everything below reads or writes session storage
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.SessionCookie(s.config.Server.CookieName, s.config.Server.CookieSecure))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Get("/widget", h.Cart.Widget)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items", h.Cart.UpdateItem)
			r.Delete("/items/{name}", h.Cart.RemoveItem)
			r.Post("/checkout", h.Cart.Checkout)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.Favorites.List)
			r.Post("/toggle", h.Favorites.Toggle)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/signup", h.Auth.Signup)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
			r.Put("/profile", h.Auth.UpdateProfile)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Get("/{number}", h.Orders.Get)
		})

		r.Post("/offers/{id}/cart", h.Offers.AddToCart)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.router.Method(http.MethodGet, "/metrics", s.telemetry.MetricsHandler())
}

// Handler returns the router wrapped with otelhttp for automatic HTTP
// metrics and tracing. The chi route context is created up front so the
// matched pattern is visible to otelhttp once the request completes.
func (s *Server) Handler() http.Handler {
	instrumented := otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			return []attribute.KeyValue{attribute.String("http.route", route)}
		}),
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, chi.NewRouteContext())
		instrumented.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
