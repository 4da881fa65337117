// Package ledger implements the token-ledger collaborator: holding-account
// bookkeeping, transfers, mint issuance and native-unit rent. Every method
// reads and writes through the repositories with the caller's context, so it
// composes with the caller's transaction boundary.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/pkg/pda"
)

type service struct {
	repoManager ports.RepoManager
}

// NewService returns a ports.Ledger backed by the given repositories.
func NewService(repoManager ports.RepoManager) (ports.Ledger, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	return &service{repoManager}, nil
}

func (s *service) Transfer(
	ctx context.Context,
	asset, from, to string, amount uint64, authority domain.Authority,
) error {
	if amount == 0 {
		return domain.ErrInvalidAmount
	}
	accounts := s.repoManager.AccountRepository()

	if _, err := accounts.GetMint(ctx, asset); err != nil {
		return err
	}

	source, err := accounts.GetHoldingAccount(ctx, from)
	if err != nil {
		return err
	}
	dest, err := accounts.GetHoldingAccount(ctx, to)
	if err != nil {
		return err
	}

	if source.Asset != asset || dest.Asset != asset {
		return domain.ErrMintMismatch
	}

	authorityAddress, err := authority.AuthorityAddress()
	if err != nil {
		return err
	}
	if source.Owner != authorityAddress {
		return domain.ErrUnauthorized
	}

	if source.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	// A self-transfer leaves the balance untouched; writing both copies of
	// the same record would double-count.
	if from == to {
		return nil
	}
	if dest.Balance+amount < dest.Balance {
		return domain.ErrAmountOverflow
	}

	source.Balance -= amount
	dest.Balance += amount

	if err := accounts.UpdateHoldingAccount(ctx, source); err != nil {
		return err
	}
	return accounts.UpdateHoldingAccount(ctx, dest)
}

func (s *service) CreateHoldingAccount(
	ctx context.Context, asset, owner, payer string,
) (string, error) {
	accounts := s.repoManager.AccountRepository()

	if _, err := accounts.GetMint(ctx, asset); err != nil {
		return "", err
	}

	address, err := pda.HoldingAddress(asset, owner)
	if err != nil {
		return "", err
	}

	if existing, err := accounts.GetHoldingAccount(ctx, address); err == nil {
		// Idempotent by address, nothing is charged twice.
		if existing.Asset != asset {
			return "", domain.ErrMintMismatch
		}
		return address, nil
	} else if err != domain.ErrAccountNotFound {
		return "", err
	}

	if err := s.DebitNative(ctx, payer, domain.HoldingAccountRent); err != nil {
		return "", fmt.Errorf("funding holding account rent: %w", err)
	}

	if err := accounts.AddHoldingAccount(ctx, &domain.HoldingAccount{
		Address:     address,
		Asset:       asset,
		Owner:       owner,
		RentDeposit: domain.HoldingAccountRent,
	}); err != nil {
		return "", err
	}
	return address, nil
}

func (s *service) CloseHoldingAccount(
	ctx context.Context, address string, authority domain.Authority,
	rentDest string,
) error {
	accounts := s.repoManager.AccountRepository()

	account, err := accounts.GetHoldingAccount(ctx, address)
	if err != nil {
		return err
	}

	authorityAddress, err := authority.AuthorityAddress()
	if err != nil {
		return err
	}
	if account.Owner != authorityAddress {
		return domain.ErrUnauthorized
	}
	if account.Balance > 0 {
		return domain.ErrAccountNotEmpty
	}

	if err := accounts.DeleteHoldingAccount(ctx, address); err != nil {
		return err
	}
	return s.CreditNative(ctx, rentDest, account.RentDeposit)
}

func (s *service) CreateMint(
	ctx context.Context, authority string, decimals uint8,
) (string, error) {
	if !pda.IsValidAddress(authority) {
		return "", pda.ErrInvalidAddress
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating asset id: %w", err)
	}
	asset := hex.EncodeToString(buf)

	if err := s.repoManager.AccountRepository().AddMint(ctx, &domain.Mint{
		Asset:     asset,
		Decimals:  decimals,
		Authority: authority,
	}); err != nil {
		return "", err
	}
	return asset, nil
}

func (s *service) MintTo(
	ctx context.Context, asset, owner string, amount uint64, authority string,
) (string, error) {
	if amount == 0 {
		return "", domain.ErrInvalidAmount
	}
	accounts := s.repoManager.AccountRepository()

	mint, err := accounts.GetMint(ctx, asset)
	if err != nil {
		return "", err
	}
	if mint.Authority != authority {
		return "", domain.ErrUnauthorized
	}
	if mint.Supply+amount < mint.Supply {
		return "", domain.ErrAmountOverflow
	}

	address, err := s.CreateHoldingAccount(ctx, asset, owner, authority)
	if err != nil {
		return "", err
	}
	account, err := accounts.GetHoldingAccount(ctx, address)
	if err != nil {
		return "", err
	}
	if account.Balance+amount < account.Balance {
		return "", domain.ErrAmountOverflow
	}

	account.Balance += amount
	if err := accounts.UpdateHoldingAccount(ctx, account); err != nil {
		return "", err
	}

	mint.Supply += amount
	if err := accounts.UpdateMint(ctx, mint); err != nil {
		return "", err
	}
	return address, nil
}

func (s *service) DebitNative(
	ctx context.Context, address string, amount uint64,
) error {
	accounts := s.repoManager.AccountRepository()

	balance, err := accounts.GetNativeBalance(ctx, address)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientFunds
	}
	return accounts.SetNativeBalance(ctx, address, balance-amount)
}

func (s *service) CreditNative(
	ctx context.Context, address string, amount uint64,
) error {
	accounts := s.repoManager.AccountRepository()

	balance, err := accounts.GetNativeBalance(ctx, address)
	if err != nil {
		return err
	}
	if balance+amount < balance {
		return domain.ErrAmountOverflow
	}
	return accounts.SetNativeBalance(ctx, address, balance+amount)
}

func (s *service) Airdrop(
	ctx context.Context, address string, amount uint64,
) error {
	if !pda.IsValidAddress(address) {
		return pda.ErrInvalidAddress
	}
	return s.CreditNative(ctx, address, amount)
}
