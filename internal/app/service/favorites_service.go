package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// FavoritesService manages the session's favorite products
type FavoritesService struct {
	storage    domain.SessionStorage
	locks      *sessionLocks
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewFavoritesService(
	storage domain.SessionStorage,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *FavoritesService {
	operations, _ := meter.Int64Counter(
		"storefront.favorites.operations",
		metric.WithDescription("Total number of favorites operations"),
	)

	return &FavoritesService{
		storage:    storage,
		locks:      newSessionLocks(),
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// List returns the favorite product names in the order they were added
func (s *FavoritesService) List(ctx context.Context, sessionID string) (*dto.FavoritesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "FavoritesService.List")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	favs, err := s.load(ctx, sessionID)
	recordOutcome(ctx, span, s.logger, s.operations, "list", err)
	if err != nil {
		return nil, err
	}

	return &dto.FavoritesResponse{Names: favs.Names, Count: len(favs.Names)}, nil
}

// Contains reports whether the product name is a favorite
func (s *FavoritesService) Contains(ctx context.Context, sessionID, name string) (bool, error) {
	favs, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return favs.Contains(name), nil
}

// Toggle adds the name when absent and removes it otherwise
func (s *FavoritesService) Toggle(ctx context.Context, sessionID, name string) (*dto.FavoriteToggleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "FavoritesService.Toggle")
	defer span.End()

	name = strings.TrimSpace(name)
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("item.name", name),
	)

	favorite, err := s.toggle(ctx, sessionID, name)
	recordOutcome(ctx, span, s.logger, s.operations, "toggle", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("favorite", favorite))
	return &dto.FavoriteToggleResponse{Name: name, Favorite: favorite}, nil
}

func (s *FavoritesService) toggle(ctx context.Context, sessionID, name string) (bool, error) {
	if name == "" {
		return false, domain.ErrInvalidFavorite
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	favs, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	favorite := favs.Toggle(name)

	data, err := favs.Encode()
	if err != nil {
		return false, fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.storage.SetItem(ctx, sessionID, domain.FavoritesStorageKey, string(data)); err != nil {
		return false, fmt.Errorf("saving favorites: %w", err)
	}
	return favorite, nil
}

func (s *FavoritesService) load(ctx context.Context, sessionID string) (*domain.Favorites, error) {
	raw, found, err := s.storage.GetItem(ctx, sessionID, domain.FavoritesStorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	if !found {
		return &domain.Favorites{Names: []string{}}, nil
	}

	favs, err := domain.DecodeFavorites([]byte(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "Discarding malformed favorites",
			slog.String("error", err.Error()),
		)
	}
	return favs, nil
}
