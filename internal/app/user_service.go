package app

import (
	"context"
	"strings"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/clock"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	ListTradesBySeller(ctx context.Context, sellerID string) ([]domain.Trade, error)
}

// UserService handles registration and profile reads. Authentication
// happens upstream; by the time a request reaches here the identity is
// already resolved and trusted.
type UserService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewUserService(repo UserRepository, clk clock.Clock) *UserService {
	return &UserService{
		repo:  repo,
		clock: clk,
	}
}

type RegisterInput struct {
	Name            string
	StartingBalance int64
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.User{}, domain.ErrUserNameRequired
	}
	if in.StartingBalance < 0 {
		return domain.User{}, domain.ErrInvalidBalance
	}

	user := domain.User{
		ID:        newID(),
		Name:      name,
		Balance:   in.StartingBalance,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type ProfileResult struct {
	User       domain.User
	OwnedItems []domain.Item
}

func (s *UserService) Profile(ctx context.Context, userID string) (ProfileResult, error) {
	if userID == "" {
		return ProfileResult{}, domain.ErrInvalidID
	}
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return ProfileResult{}, err
	}
	items, err := s.repo.ListItemsByOwner(ctx, userID)
	if err != nil {
		return ProfileResult{}, err
	}
	return ProfileResult{User: user, OwnedItems: items}, nil
}

// Sales returns the user's settled trades as a seller, newest first.
func (s *UserService) Sales(ctx context.Context, userID string) ([]domain.Trade, error) {
	if userID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListTradesBySeller(ctx, userID)
}
