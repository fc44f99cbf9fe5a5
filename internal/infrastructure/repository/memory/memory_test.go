package memory

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestProductRepository() *ProductRepository {
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))
}

func TestProductRepositoryCreateAndFind(t *testing.T) {
	repo := newTestProductRepository()
	ctx := context.Background()

	p, err := domain.NewProduct("ECG Machine", "12 lead", 15000)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindBySlug(ctx, "ecg-machine")
	require.NoError(t, err)
	assert.Equal(t, "ECG Machine", found.Name)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepositoryRejectsInvalid(t *testing.T) {
	repo := newTestProductRepository()
	err := repo.Create(context.Background(), &domain.Product{Slug: "x", Price: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidProductName)
}

func TestProductRepositoryFindAllNewestFirst(t *testing.T) {
	repo := newTestProductRepository()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Old", "Mid", "New"} {
		p, err := domain.NewProduct(name, "", 1)
		require.NoError(t, err)
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "New", all[0].Name)
	assert.Equal(t, "Old", all[2].Name)
}

func TestProductRepositoryIncrementViews(t *testing.T) {
	repo := newTestProductRepository()
	ctx := context.Background()

	p, err := domain.NewProduct("Mask", "", 5)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.IncrementViews(ctx, "mask"))
	require.NoError(t, repo.IncrementViews(ctx, "mask"))

	found, err := repo.FindBySlug(ctx, "mask")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Views)

	assert.ErrorIs(t, repo.IncrementViews(ctx, "nope"), domain.ErrProductNotFound)
}

func TestCategoryRepositoryOrdering(t *testing.T) {
	repo := NewCategoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Category{Slug: "b", Name: "Beta", Order: 2}))
	require.NoError(t, repo.Create(ctx, &domain.Category{Slug: "z", Name: "Zeta", Order: 1}))
	require.NoError(t, repo.Create(ctx, &domain.Category{Slug: "a", Name: "Alpha", Order: 1}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "z", "b"}, []string{all[0].Slug, all[1].Slug, all[2].Slug})
	assert.Equal(t, domain.DefaultCategoryIcon, all[0].Icon)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestOfferRepository(t *testing.T) {
	repo := NewOfferRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Offer{ID: "o1", Title: "Sale", ProductSlugs: []string{"mask"}}))

	found, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mask"}, found.ProductSlugs)

	_, err = repo.FindByID(ctx, "o2")
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestSessionStorage(t *testing.T) {
	s := NewSessionStorage()
	ctx := context.Background()

	_, ok, err := s.GetItem(ctx, "s1", domain.CartStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, "s1", domain.CartStorageKey, "[]"))
	require.NoError(t, s.SetItem(ctx, "s2", domain.CartStorageKey, `[{"name":"x"}]`))

	v, ok, err := s.GetItem(ctx, "s1", domain.CartStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, s.RemoveItem(ctx, "s1", domain.CartStorageKey))
	_, ok, _ = s.GetItem(ctx, "s1", domain.CartStorageKey)
	assert.False(t, ok)

	v, _, _ = s.GetItem(ctx, "s2", domain.CartStorageKey)
	assert.Equal(t, `[{"name":"x"}]`, v)

	assert.NoError(t, s.RemoveItem(ctx, "unknown", "key"))
}

func TestOrderRepository(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	now := time.Now()

	older := &domain.Order{Number: "EM1", SessionID: "s1", CreatedAt: now.Add(-time.Minute)}
	newer := &domain.Order{Number: "EM2", SessionID: "s1", CreatedAt: now}
	other := &domain.Order{Number: "EM3", SessionID: "s2", CreatedAt: now}
	for _, o := range []*domain.Order{older, newer, other} {
		require.NoError(t, repo.Create(ctx, o))
	}

	orders, err := repo.FindBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "EM2", orders[0].Number)

	_, err = repo.FindByNumber(ctx, "EM9")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepositoryRejectsTakenNumber(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Order{Number: "EM1", SessionID: "s1"}))
	err := repo.Create(ctx, &domain.Order{Number: "EM1", SessionID: "s2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)

	found, err := repo.FindByNumber(ctx, "EM1")
	require.NoError(t, err)
	assert.Equal(t, "s1", found.SessionID)
}

func TestContactRepositorySubscribeOnce(t *testing.T) {
	repo := NewContactRepository()
	ctx := context.Background()

	sub, err := domain.NewSubscription("a@example.com")
	require.NoError(t, err)

	require.NoError(t, repo.Subscribe(ctx, sub))
	assert.ErrorIs(t, repo.Subscribe(ctx, sub), domain.ErrAlreadySubscribed)

	msg, err := domain.NewContactMessage("n", "e@x.com", "1", "s", "m")
	require.NoError(t, err)
	require.NoError(t, repo.SaveMessage(ctx, msg))
	assert.Len(t, repo.messages, 1)
}

func TestContactRepositorySubscribeIgnoresDisplayName(t *testing.T) {
	repo := NewContactRepository()
	ctx := context.Background()

	plain, err := domain.NewSubscription("bob@x.io")
	require.NoError(t, err)
	named, err := domain.NewSubscription("Bob <BOB@x.io>")
	require.NoError(t, err)

	require.NoError(t, repo.Subscribe(ctx, plain))
	assert.ErrorIs(t, repo.Subscribe(ctx, named), domain.ErrAlreadySubscribed)
	assert.Len(t, repo.subscriptions, 1)
}
