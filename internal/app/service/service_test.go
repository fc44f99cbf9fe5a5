package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/memory"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/whatsapp"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

var testStore = StoreSettings{
	Name:            "Entity Medical",
	Currency:        "جنيه",
	DemoUserName:    "د. عمر الشريف",
	NewUserName:     "مستخدم جديد",
	RelatedProducts: 4,
	FeaturedLimit:   4,
}

type fixture struct {
	storage    *memory.SessionStorage
	products   *memory.ProductRepository
	categories *memory.CategoryRepository
	offers     *memory.OfferRepository
	orders     *memory.OrderRepository
	contacts   *memory.ContactRepository

	cart      *CartService
	favorites *FavoritesService
	auth      *AuthService
	catalog   *ProductService
	orderSvc  *OrderService
	offerSvc  *OfferService
	contact   *ContactService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tracer := noop.NewTracerProvider().Tracer("test")
	meter := metricnoop.NewMeterProvider().Meter("test")
	logger := slog.New(slog.DiscardHandler)
	links := whatsapp.NewLinkBuilder("201013928114")

	f := &fixture{
		storage:    memory.NewSessionStorage(),
		products:   memory.NewProductRepository(tracer, logger),
		categories: memory.NewCategoryRepository(),
		offers:     memory.NewOfferRepository(),
		orders:     memory.NewOrderRepository(),
		contacts:   memory.NewContactRepository(),
	}

	f.cart = NewCartService(f.storage, f.products, f.orders, links, testStore, tracer, meter, logger)
	f.favorites = NewFavoritesService(f.storage, tracer, meter, logger)
	f.auth = NewAuthService(f.storage, testStore, tracer, meter, logger)
	f.catalog = NewProductService(f.products, f.categories, testStore, tracer, meter, logger)
	f.orderSvc = NewOrderService(f.orders, tracer, meter, logger)
	f.offerSvc = NewOfferService(f.offers, f.products, f.cart, tracer, meter, logger)
	f.contact = NewContactService(f.contacts, links, tracer, meter, logger)
	return f
}

// addProduct stores an active product; later calls list as newer
func (f *fixture) addProduct(t *testing.T, slug, name, category string, price float64, featured bool) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, name+" description", price)
	require.NoError(t, err)
	p.Slug = slug
	p.CategorySlug = category
	p.Featured = featured
	all, err := f.products.FindAll(context.Background())
	require.NoError(t, err)
	p.CreatedAt = time.Date(2025, 1, 1, 0, 0, len(all), 0, time.UTC)
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

// failingOrders rejects every write
type failingOrders struct {
	domain.OrderRepository
}

var errStorageDown = errors.New("storage down")

func (failingOrders) Create(context.Context, *domain.Order) error {
	return errStorageDown
}
