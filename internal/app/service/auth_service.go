package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// AuthService is the mock authentication flow. No credentials are checked;
// the signed-in user lives in session storage.
type AuthService struct {
	storage    domain.SessionStorage
	store      StoreSettings
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewAuthService(
	storage domain.SessionStorage,
	store StoreSettings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *AuthService {
	operations, _ := meter.Int64Counter(
		"storefront.auth.operations",
		metric.WithDescription("Total number of authentication operations"),
	)

	return &AuthService{
		storage:    storage,
		store:      store,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// Login always succeeds and signs the session in as the demo administrator
func (s *AuthService) Login(ctx context.Context, sessionID string, req *dto.LoginRequest) (*dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	user := &domain.User{Name: s.store.DemoUserName, Role: domain.RoleAdmin, Phone: strings.TrimSpace(req.Phone)}
	err := s.saveUser(ctx, sessionID, user)
	recordOutcome(ctx, span, s.logger, s.operations, "login", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User logged in", slog.String("role", string(user.Role)))
	return dto.ToUserResponse(user), nil
}

// Signup signs the session in as a new member. Blank names fall back to
// the configured default name.
func (s *AuthService) Signup(ctx context.Context, sessionID string, req *dto.SignupRequest) (*dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	if req.Password != req.ConfirmPassword {
		recordOutcome(ctx, span, s.logger, s.operations, "signup", domain.ErrPasswordMismatch)
		return nil, domain.ErrPasswordMismatch
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = s.store.NewUserName
	}
	user := &domain.User{Name: name, Role: domain.RoleMember, Phone: strings.TrimSpace(req.Phone)}

	err := s.saveUser(ctx, sessionID, user)
	recordOutcome(ctx, span, s.logger, s.operations, "signup", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User signed up", slog.String("role", string(user.Role)))
	return dto.ToUserResponse(user), nil
}

// ResetPassword only checks that both passwords match; nothing is stored
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()

	var err error
	if req.Password != req.ConfirmPassword {
		err = domain.ErrPasswordMismatch
	}
	recordOutcome(ctx, span, s.logger, s.operations, "reset_password", err)
	return err
}

// Logout forgets the signed-in user
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	err := s.storage.RemoveItem(ctx, sessionID, domain.CurrentUserStorageKey)
	if err != nil {
		err = fmt.Errorf("removing current user: %w", err)
	}
	recordOutcome(ctx, span, s.logger, s.operations, "logout", err)
	return err
}

// Current returns the signed-in user or domain.ErrNotLoggedIn
func (s *AuthService) Current(ctx context.Context, sessionID string) (*dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Current")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	user, err := s.current(ctx, sessionID)
	recordOutcome(ctx, span, s.logger, s.operations, "current", err)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// UpdateProfile renames the signed-in user and records the email
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.UpdateProfile")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", sessionID))

	user, err := s.current(ctx, sessionID)
	if err == nil {
		if name := strings.TrimSpace(req.Name); name != "" {
			user.Name = name
		}
		if email := strings.TrimSpace(req.Email); email != "" {
			user.Email = email
		}
		err = s.saveUser(ctx, sessionID, user)
	}
	recordOutcome(ctx, span, s.logger, s.operations, "update_profile", err)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

func (s *AuthService) current(ctx context.Context, sessionID string) (*domain.User, error) {
	raw, found, err := s.storage.GetItem(ctx, sessionID, domain.CurrentUserStorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if !found {
		return nil, domain.ErrNotLoggedIn
	}

	user, err := domain.DecodeUser([]byte(raw))
	if err != nil {
		// a wrapped error means the record was present but unreadable
		if errors.Unwrap(err) != nil {
			s.logger.WarnContext(ctx, "Ignoring malformed current user",
				slog.String("error", err.Error()),
			)
		}
		return nil, domain.ErrNotLoggedIn
	}
	return user, nil
}

func (s *AuthService) saveUser(ctx context.Context, sessionID string, user *domain.User) error {
	data, err := user.Encode()
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.storage.SetItem(ctx, sessionID, domain.CurrentUserStorageKey, string(data)); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	return nil
}
