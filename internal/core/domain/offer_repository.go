package domain

import "context"

// OfferRepository is the persistent store of open offer records, keyed by
// custody address. Insertion is set-if-absent at the storage layer, never
// check-then-act, so the (maker, id) uniqueness invariant holds without an
// application-level lock.
type OfferRepository interface {
	// AddOffer persists a new offer record at its custody address. Returns
	// ErrOfferAlreadyExists if a record is already live there.
	AddOffer(ctx context.Context, offer *Offer) error
	// GetOffer returns the offer record at the given custody address, or
	// ErrOfferNotFound.
	GetOffer(ctx context.Context, custodyAddress string) (*Offer, error)
	// DeleteOffer destroys the offer record at the given custody address.
	DeleteOffer(ctx context.Context, custodyAddress string) error
	// GetAllOffers returns every open offer.
	GetAllOffers(ctx context.Context) ([]Offer, error)
}
