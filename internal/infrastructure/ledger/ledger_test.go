package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/internal/infrastructure/ledger"
	dbbadger "github.com/escrow-network/escrowd/internal/infrastructure/storage/db/badger"
	"github.com/escrow-network/escrowd/pkg/identity"
	"github.com/escrow-network/escrowd/pkg/pda"
)

var ctx = context.Background()

func TestMintAndTransfer(t *testing.T) {
	ledgerSvc, repoManager := newTestLedger(t)

	authority := newAddress(t)
	alice := newAddress(t)
	bob := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))
	require.NoError(t, ledgerSvc.Airdrop(ctx, bob, 100_000_000))

	asset, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)

	aliceAccount, err := ledgerSvc.MintTo(ctx, asset, alice, 1_000, authority)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), balance(t, repoManager, aliceAccount))

	mint, err := repoManager.AccountRepository().GetMint(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), mint.Supply)

	bobAccount, err := ledgerSvc.CreateHoldingAccount(ctx, asset, bob, bob)
	require.NoError(t, err)

	err = ledgerSvc.Transfer(
		ctx, asset, aliceAccount, bobAccount, 400,
		domain.IdentityAuthority(alice),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(600), balance(t, repoManager, aliceAccount))
	require.Equal(t, uint64(400), balance(t, repoManager, bobAccount))
}

func TestSelfTransfer(t *testing.T) {
	ledgerSvc, repoManager := newTestLedger(t)

	authority := newAddress(t)
	alice := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))

	asset, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)
	aliceAccount, err := ledgerSvc.MintTo(ctx, asset, alice, 100, authority)
	require.NoError(t, err)

	// Source and destination are the same account: the balance and the
	// supply must be exactly conserved.
	err = ledgerSvc.Transfer(
		ctx, asset, aliceAccount, aliceAccount, 10,
		domain.IdentityAuthority(alice),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(100), balance(t, repoManager, aliceAccount))

	mint, err := repoManager.AccountRepository().GetMint(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, uint64(100), mint.Supply)

	// The amount is still checked against the held balance.
	err = ledgerSvc.Transfer(
		ctx, asset, aliceAccount, aliceAccount, 101,
		domain.IdentityAuthority(alice),
	)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestFailingTransfer(t *testing.T) {
	ledgerSvc, repoManager := newTestLedger(t)

	authority := newAddress(t)
	alice := newAddress(t)
	bob := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))

	assetX, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)
	assetY, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)

	aliceX, err := ledgerSvc.MintTo(ctx, assetX, alice, 100, authority)
	require.NoError(t, err)
	bobX, err := ledgerSvc.MintTo(ctx, assetX, bob, 100, authority)
	require.NoError(t, err)
	bobY, err := ledgerSvc.MintTo(ctx, assetY, bob, 100, authority)
	require.NoError(t, err)

	// Insufficient balance on the paying side.
	err = ledgerSvc.Transfer(
		ctx, assetX, aliceX, bobX, 101, domain.IdentityAuthority(alice),
	)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Declared asset disagrees with the receiving account.
	err = ledgerSvc.Transfer(
		ctx, assetX, aliceX, bobY, 10, domain.IdentityAuthority(alice),
	)
	require.ErrorIs(t, err, domain.ErrMintMismatch)

	// Authority does not own the source.
	err = ledgerSvc.Transfer(
		ctx, assetX, aliceX, bobX, 10, domain.IdentityAuthority(bob),
	)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	// Unknown mint.
	err = ledgerSvc.Transfer(
		ctx, newAddress(t), aliceX, bobX, 10, domain.IdentityAuthority(alice),
	)
	require.ErrorIs(t, err, domain.ErrMintNotFound)

	// Nothing moved.
	require.Equal(t, uint64(100), balance(t, repoManager, aliceX))
	require.Equal(t, uint64(100), balance(t, repoManager, bobX))
	require.Equal(t, uint64(100), balance(t, repoManager, bobY))
}

func TestHoldingAccountLifecycle(t *testing.T) {
	ledgerSvc, repoManager := newTestLedger(t)
	accounts := repoManager.AccountRepository()

	authority := newAddress(t)
	owner := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))
	require.NoError(t, ledgerSvc.Airdrop(ctx, owner, 10_000_000))

	asset, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)

	address, err := ledgerSvc.CreateHoldingAccount(ctx, asset, owner, owner)
	require.NoError(t, err)
	expected, err := pda.HoldingAddress(asset, owner)
	require.NoError(t, err)
	require.Equal(t, expected, address)

	// Rent was debited from the payer.
	nativeBalance, err := accounts.GetNativeBalance(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 10_000_000-domain.HoldingAccountRent, nativeBalance)

	// Idempotent by address: recreating charges nothing.
	again, err := ledgerSvc.CreateHoldingAccount(ctx, asset, owner, owner)
	require.NoError(t, err)
	require.Equal(t, address, again)
	nativeBalance, err = accounts.GetNativeBalance(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 10_000_000-domain.HoldingAccountRent, nativeBalance)

	// A funded account cannot be closed.
	_, err = ledgerSvc.MintTo(ctx, asset, owner, 5, authority)
	require.NoError(t, err)
	err = ledgerSvc.CloseHoldingAccount(
		ctx, address, domain.IdentityAuthority(owner), owner,
	)
	require.ErrorIs(t, err, domain.ErrAccountNotEmpty)

	// Empty it and close: the rent deposit comes back.
	other, err := ledgerSvc.MintTo(ctx, asset, authority, 1, authority)
	require.NoError(t, err)
	require.NoError(t, ledgerSvc.Transfer(
		ctx, asset, address, other, 5, domain.IdentityAuthority(owner),
	))
	require.NoError(t, ledgerSvc.CloseHoldingAccount(
		ctx, address, domain.IdentityAuthority(owner), owner,
	))

	nativeBalance, err = accounts.GetNativeBalance(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000), nativeBalance)

	_, err = accounts.GetHoldingAccount(ctx, address)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestMintToRequiresAuthority(t *testing.T) {
	ledgerSvc, _ := newTestLedger(t)

	authority := newAddress(t)
	intruder := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))

	asset, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)

	_, err = ledgerSvc.MintTo(ctx, asset, intruder, 10, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRentRequiresFunds(t *testing.T) {
	ledgerSvc, _ := newTestLedger(t)

	authority := newAddress(t)
	pauper := newAddress(t)
	require.NoError(t, ledgerSvc.Airdrop(ctx, authority, 100_000_000))

	asset, err := ledgerSvc.CreateMint(ctx, authority, 8)
	require.NoError(t, err)

	_, err = ledgerSvc.CreateHoldingAccount(ctx, asset, pauper, pauper)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func newTestLedger(t *testing.T) (ports.Ledger, ports.RepoManager) {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	ledgerSvc, err := ledger.NewService(repoManager)
	require.NoError(t, err)
	return ledgerSvc, repoManager
}

func balance(t *testing.T, repoManager ports.RepoManager, address string) uint64 {
	t.Helper()
	account, err := repoManager.AccountRepository().GetHoldingAccount(ctx, address)
	require.NoError(t, err)
	return account.Balance
}

func newAddress(t *testing.T) string {
	t.Helper()
	keyPair, err := identity.NewKeyPair()
	require.NoError(t, err)
	return keyPair.Address()
}
