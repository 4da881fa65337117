package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store
}

func newAccountRepositoryImpl(store *badgerhold.Store) domain.AccountRepository {
	return accountRepositoryImpl{store}
}

func (a accountRepositoryImpl) AddHoldingAccount(
	ctx context.Context, account *domain.HoldingAccount,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxInsert(tx, account.Address, *account)
	}
	return a.store.Insert(account.Address, *account)
}

func (a accountRepositoryImpl) GetHoldingAccount(
	ctx context.Context, address string,
) (*domain.HoldingAccount, error) {
	var account domain.HoldingAccount
	var err error
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		err = a.store.TxGet(tx, address, &account)
	} else {
		err = a.store.Get(address, &account)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (a accountRepositoryImpl) UpdateHoldingAccount(
	ctx context.Context, account *domain.HoldingAccount,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxUpdate(tx, account.Address, *account)
	}
	return a.store.Update(account.Address, *account)
}

func (a accountRepositoryImpl) DeleteHoldingAccount(
	ctx context.Context, address string,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxDelete(tx, address, domain.HoldingAccount{})
	}
	return a.store.Delete(address, domain.HoldingAccount{})
}

func (a accountRepositoryImpl) AddMint(
	ctx context.Context, mint *domain.Mint,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxInsert(tx, mint.Asset, *mint)
	}
	return a.store.Insert(mint.Asset, *mint)
}

func (a accountRepositoryImpl) GetMint(
	ctx context.Context, asset string,
) (*domain.Mint, error) {
	var mint domain.Mint
	var err error
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		err = a.store.TxGet(tx, asset, &mint)
	} else {
		err = a.store.Get(asset, &mint)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrMintNotFound
		}
		return nil, err
	}
	return &mint, nil
}

func (a accountRepositoryImpl) UpdateMint(
	ctx context.Context, mint *domain.Mint,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxUpdate(tx, mint.Asset, *mint)
	}
	return a.store.Update(mint.Asset, *mint)
}

func (a accountRepositoryImpl) GetNativeBalance(
	ctx context.Context, address string,
) (uint64, error) {
	var balance domain.NativeBalance
	var err error
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		err = a.store.TxGet(tx, address, &balance)
	} else {
		err = a.store.Get(address, &balance)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance.Balance, nil
}

func (a accountRepositoryImpl) SetNativeBalance(
	ctx context.Context, address string, balance uint64,
) error {
	record := domain.NativeBalance{Address: address, Balance: balance}
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxUpsert(tx, address, record)
	}
	return a.store.Upsert(address, record)
}

func (a accountRepositoryImpl) GetNonce(
	ctx context.Context, address string,
) (uint64, error) {
	var nonce domain.Nonce
	var err error
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		err = a.store.TxGet(tx, address, &nonce)
	} else {
		err = a.store.Get(address, &nonce)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return nonce.Value, nil
}

func (a accountRepositoryImpl) SetNonce(
	ctx context.Context, address string, value uint64,
) error {
	record := domain.Nonce{Address: address, Value: value}
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return a.store.TxUpsert(tx, address, record)
	}
	return a.store.Upsert(address, record)
}
