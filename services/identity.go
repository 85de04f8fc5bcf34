package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

type IdentityService struct {
	users      database.UserRepository
	tokens     *helpers.TokenManager
	bcryptCost int
	clock      helpers.Clock
	logger     *slog.Logger
}

func NewIdentityService(users database.UserRepository, tokens *helpers.TokenManager, bcryptCost int, clock helpers.Clock, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		clock:      clock,
		logger:     logger.With("component", "identity"),
	}
}

func (s *IdentityService) Register(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	email, err := helpers.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrDuplicateEmail
	}

	hashed, err := helpers.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Email:      email,
		Password:   hashed,
		Created_at: s.clock.Now().UTC(),
	}
	// the unique index still catches a concurrent registration with the same email
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID.Hex())
	return s.issue(user)
}

func (s *IdentityService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email, err := helpers.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := helpers.VerifyPassword(req.Password, user.Password); err != nil {
		s.logger.WarnContext(ctx, "login rejected", "user_id", user.ID.Hex())
		return nil, err
	}
	return s.issue(user)
}

// Verify returns the user id bound to token.
func (s *IdentityService) Verify(token string) (string, error) {
	return s.tokens.ValidateToken(token)
}

func (s *IdentityService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *IdentityService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user.Profile()}, nil
}
