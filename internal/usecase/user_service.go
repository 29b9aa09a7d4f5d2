package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	idgen "github.com/riftlabs/fantasy-esports/internal/platform/id"
)

// RegisterUserInput is the incoming payload for user registration.
type RegisterUserInput struct {
	Email       string
	Username    string
	DisplayName string
}

type UserService struct {
	userRepo user.Repository
	idGen    idgen.Generator
	logger   *slog.Logger
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, idGen idgen.Generator, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userRepo: userRepo,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.Email == "" {
		return user.Profile{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Username == "" {
		return user.Profile{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get user by email: %w", err)
	}
	if exists {
		return user.Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, user.ErrDuplicateEmail)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return user.Profile{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	profile := user.Profile{
		ID:          id,
		Email:       input.Email,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := profile.Validate(); err != nil {
		return user.Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.userRepo.Create(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("userID", profile.ID),
		slog.String("username", profile.Username),
	)
	return profile, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetProfile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	profile, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.Profile{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return profile, nil
}
