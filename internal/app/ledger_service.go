package app

import (
	"context"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

type AccountRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBalance(ctx context.Context, userID string) (int64, error)
	GetBalanceForUpdate(ctx context.Context, userID string) (int64, error)
	AddToBalance(ctx context.Context, userID string, delta int64) error
}

// LedgerService is the sole writer of user balances. Transfers are
// atomic: the debit and credit land together or not at all.
type LedgerService struct {
	repo AccountRepository
}

func NewLedgerService(repo AccountRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrInvalidID
	}
	return s.repo.GetBalance(ctx, userID)
}

// Transfer moves amount from one account to the other. Both rows are
// locked in ascending user-id order so two transfers between mutual
// counterparties cannot deadlock. Reentrant under an enclosing
// transaction carried in ctx.
func (s *LedgerService) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error {
	if fromUserID == "" || toUserID == "" {
		return domain.ErrInvalidID
	}
	if fromUserID == toUserID {
		return domain.ErrSameAccount
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		first, second := fromUserID, toUserID
		if second < first {
			first, second = second, first
		}

		if _, err := s.repo.GetBalanceForUpdate(txCtx, first); err != nil {
			return err
		}
		if _, err := s.repo.GetBalanceForUpdate(txCtx, second); err != nil {
			return err
		}

		fromBalance, err := s.repo.GetBalance(txCtx, fromUserID)
		if err != nil {
			return err
		}
		if fromBalance < amount {
			return domain.ErrInsufficientFunds
		}

		if err := s.repo.AddToBalance(txCtx, fromUserID, -amount); err != nil {
			return err
		}
		return s.repo.AddToBalance(txCtx, toUserID, amount)
	})
}
