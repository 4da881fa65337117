package domain

import "context"

// AccountRepository is the persistent store of mints, holding accounts and
// native balances.
type AccountRepository interface {
	AddHoldingAccount(ctx context.Context, account *HoldingAccount) error
	// GetHoldingAccount returns the holding account at the given address, or
	// ErrAccountNotFound.
	GetHoldingAccount(ctx context.Context, address string) (*HoldingAccount, error)
	UpdateHoldingAccount(ctx context.Context, account *HoldingAccount) error
	DeleteHoldingAccount(ctx context.Context, address string) error

	AddMint(ctx context.Context, mint *Mint) error
	// GetMint returns the mint of the given asset, or ErrMintNotFound.
	GetMint(ctx context.Context, asset string) (*Mint, error)
	UpdateMint(ctx context.Context, mint *Mint) error

	// GetNativeBalance returns the native units held by an address, zero if
	// the address was never funded.
	GetNativeBalance(ctx context.Context, address string) (uint64, error)
	SetNativeBalance(ctx context.Context, address string, balance uint64) error

	// GetNonce returns the next operation nonce expected from an address,
	// zero if it never operated.
	GetNonce(ctx context.Context, address string) (uint64, error)
	SetNonce(ctx context.Context, address string, value uint64) error
}
