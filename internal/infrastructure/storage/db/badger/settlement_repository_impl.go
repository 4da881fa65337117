package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type settlementRepositoryImpl struct {
	store *badgerhold.Store
}

func newSettlementRepositoryImpl(store *badgerhold.Store) domain.SettlementRepository {
	return settlementRepositoryImpl{store}
}

func (s settlementRepositoryImpl) AddSettlement(
	ctx context.Context, settlement *domain.Settlement,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return s.store.TxInsert(tx, settlement.Id, *settlement)
	}
	return s.store.Insert(settlement.Id, *settlement)
}

func (s settlementRepositoryImpl) GetAllSettlements(
	ctx context.Context,
) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	var err error
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		err = s.store.TxFind(tx, &settlements, nil)
	} else {
		err = s.store.Find(&settlements, nil)
	}
	return settlements, err
}
