package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, email, password, firstName, lastName string, role Role) (*User, error) {
	if email == "" || password == "" {
		return nil, apperr.InvalidArgument("email and password are required")
	}

	switch Role(strings.ToUpper(string(role))) {
	case RoleConsumer, RoleSupplier:
		role = Role(strings.ToUpper(string(role)))
	case "":
		role = RoleConsumer
	default:
		return nil, apperr.InvalidArgument("role must be CONSUMER or SUPPLIER")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("user", id)
	}
	return u, nil
}
