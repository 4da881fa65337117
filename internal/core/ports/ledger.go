package ports

import (
	"context"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// Ledger exposes the asset primitives the escrow operations consume: moving
// balances between holding accounts, creating and closing holding accounts,
// and paying storage rent in native units. Implementations must compose with
// RepoManager.RunTransaction, ie. never open their own transaction.
type Ledger interface {
	// Transfer moves amount base units of asset between holding accounts.
	// Fails with domain.ErrInsufficientFunds if the source balance is lower
	// than amount, with domain.ErrMintMismatch if either account's recorded
	// asset disagrees with the declared one, and with domain.ErrUnauthorized
	// if the authority does not resolve to the source owner.
	Transfer(
		ctx context.Context,
		asset, from, to string, amount uint64, authority domain.Authority,
	) error

	// CreateHoldingAccount creates the canonical holding account for the
	// (asset, owner) pair, charging the payer the rent deposit. Idempotent by
	// address: if the account already exists its address is returned and
	// nothing is charged.
	CreateHoldingAccount(
		ctx context.Context, asset, owner, payer string,
	) (string, error)

	// CloseHoldingAccount destroys an empty holding account and refunds its
	// rent deposit to rentDest. Fails with domain.ErrAccountNotEmpty if a
	// balance remains.
	CloseHoldingAccount(
		ctx context.Context, address string, authority domain.Authority,
		rentDest string,
	) error

	// CreateMint registers a new asset type and returns its id.
	CreateMint(
		ctx context.Context, authority string, decimals uint8,
	) (string, error)

	// MintTo issues amount new units of asset to the owner's canonical
	// holding account, creating it if absent with the mint authority paying
	// rent. Only the mint authority may issue.
	MintTo(
		ctx context.Context, asset, owner string, amount uint64,
		authority string,
	) (string, error)

	// DebitNative and CreditNative move native units for storage rent.
	DebitNative(ctx context.Context, address string, amount uint64) error
	CreditNative(ctx context.Context, address string, amount uint64) error

	// Airdrop funds an address with native units. Test and dev environments
	// only; a production deployment would gate issuance.
	Airdrop(ctx context.Context, address string, amount uint64) error
}
