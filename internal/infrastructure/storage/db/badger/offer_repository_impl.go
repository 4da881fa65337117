package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// Offer records are stored as their raw fixed binary layout under
// offer:<custody-address>, so external readers can decode open offers
// without program logic.
var offerKeyPrefix = []byte("offer:")

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

func newOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return offerRepositoryImpl{store}
}

func (o offerRepositoryImpl) AddOffer(
	ctx context.Context, offer *domain.Offer,
) error {
	custodyAddress, err := offer.Address()
	if err != nil {
		return err
	}
	key := offerKey(custodyAddress)
	buf := offer.Serialize()

	insert := func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err == nil {
			return domain.ErrOfferAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return tx.Set(key, buf)
	}

	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return insert(tx)
	}
	return o.store.Badger().Update(insert)
}

func (o offerRepositoryImpl) GetOffer(
	ctx context.Context, custodyAddress string,
) (*domain.Offer, error) {
	key := offerKey(custodyAddress)

	get := func(tx *badger.Txn) (*domain.Offer, error) {
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil, domain.ErrOfferNotFound
			}
			return nil, err
		}
		buf, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		return domain.DeserializeOffer(buf)
	}

	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return get(tx)
	}

	var offer *domain.Offer
	err := o.store.Badger().View(func(tx *badger.Txn) error {
		var err error
		offer, err = get(tx)
		return err
	})
	return offer, err
}

func (o offerRepositoryImpl) DeleteOffer(
	ctx context.Context, custodyAddress string,
) error {
	key := offerKey(custodyAddress)

	del := func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrOfferNotFound
			}
			return err
		}
		return tx.Delete(key)
	}

	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return del(tx)
	}
	return o.store.Badger().Update(del)
}

func (o offerRepositoryImpl) GetAllOffers(
	ctx context.Context,
) ([]domain.Offer, error) {
	scan := func(tx *badger.Txn) ([]domain.Offer, error) {
		offers := make([]domain.Offer, 0)

		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = offerKeyPrefix
		it := tx.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(offerKeyPrefix); it.ValidForPrefix(offerKeyPrefix); it.Next() {
			buf, err := it.Item().ValueCopy(nil)
			if err != nil {
				return nil, err
			}
			offer, err := domain.DeserializeOffer(buf)
			if err != nil {
				return nil, err
			}
			offers = append(offers, *offer)
		}
		return offers, nil
	}

	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return scan(tx)
	}

	var offers []domain.Offer
	err := o.store.Badger().View(func(tx *badger.Txn) error {
		var err error
		offers, err = scan(tx)
		return err
	})
	return offers, err
}

func offerKey(custodyAddress string) []byte {
	return append(append([]byte{}, offerKeyPrefix...), custodyAddress...)
}
