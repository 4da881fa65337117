// Package dbbadger implements the repositories over a badgerhold store.
// Repositories look for a *badger.Txn in the context and run their reads and
// writes through it when present, so that RunTransaction can make a whole
// operation a single all-or-nothing unit.
package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	offerRepository      domain.OfferRepository
	accountRepository    domain.AccountRepository
	settlementRepository domain.SettlementRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk
// and returns the manager giving access to all repositories.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(filepath.Join(baseDbDir, "escrow"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening escrow db: %w", err)
	}

	return &repoManager{
		store:                store,
		offerRepository:      newOfferRepositoryImpl(store),
		accountRepository:    newAccountRepositoryImpl(store),
		settlementRepository: newSettlementRepositoryImpl(store),
	}, nil
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *repoManager) SettlementRepository() domain.SettlementRepository {
	return d.settlementRepository
}

// RunTransaction runs the handler within a single badger transaction injected
// into the context. Badger detects read-write conflicts optimistically at
// commit time; on conflict the handler is re-run against the committed state,
// which serializes racing operations: a settlement race has exactly one
// winner, the losers re-read an absent offer record and fail with not-found.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	for {
		tx := d.store.Badger().NewTransaction(!readOnly)
		res, err := handler(context.WithValue(ctx, "tx", tx))
		if err != nil {
			tx.Discard()
			return nil, err
		}

		if readOnly {
			tx.Discard()
			return res, nil
		}

		if err := tx.Commit(); err != nil {
			if errors.Is(err, badger.ErrConflict) {
				continue
			}
			return nil, fmt.Errorf("committing transaction: %w", err)
		}
		return res, nil
	}
}

func (d *repoManager) NewTransaction() ports.Transaction {
	return d.store.Badger().NewTransaction(true)
}

func (d *repoManager) Close() {
	d.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
