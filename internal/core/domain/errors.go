package domain

import "errors"

var (
	// ErrOfferNotFound is returned when acting on an offer that was already
	// settled or never existed. Terminal: the caller must create a new offer
	// if its intent persists.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferAlreadyExists is returned when a (maker, id) pair collides with
	// a live offer record. Distinct from ErrOfferNotFound: the former means
	// "not permitted", the latter "nothing to act on".
	ErrOfferAlreadyExists = errors.New("an offer already exists at the derived custody address")
	// ErrOfferInvalidMaker ...
	ErrOfferInvalidMaker = errors.New("maker must be a valid identity address")
	// ErrOfferInvalidAsset ...
	ErrOfferInvalidAsset = errors.New("asset must be a 32-byte hex string")
	// ErrOfferSameAsset is returned when the offered and wanted assets match.
	ErrOfferSameAsset = errors.New("offered and wanted assets must differ")
	// ErrInvalidAmount is returned for zero amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrOfferInvalidLayout is returned when decoding bytes that are not a
	// well-formed offer record.
	ErrOfferInvalidLayout = errors.New("malformed offer record layout")

	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("holding account not found")
	// ErrAccountNotEmpty is returned when closing a holding account that
	// still holds a balance.
	ErrAccountNotEmpty = errors.New("holding account must be empty to be closed")
	// ErrAccountWrongOwner is returned when a supplied holding account is not
	// owned by the expected party.
	ErrAccountWrongOwner = errors.New("holding account is not owned by the expected party")
	// ErrMintNotFound ...
	ErrMintNotFound = errors.New("mint not found")
	// ErrMintMismatch is returned when a holding account's recorded asset
	// disagrees with the declared one.
	ErrMintMismatch = errors.New("holding account asset does not match the declared mint")
	// ErrInsufficientFunds is returned when the paying side holds less than
	// the requested amount, for token and native balances alike.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized is returned when a transfer or close authority does not
	// match the account owner.
	ErrUnauthorized = errors.New("authority does not own the source account")
	// ErrAmountOverflow is returned when a balance would overflow uint64.
	ErrAmountOverflow = errors.New("amount overflows the receiving balance")
)
