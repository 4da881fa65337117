package application

import "errors"

var (
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("operation must be co-signed by the invoking party")
	// ErrInvalidIdentity ...
	ErrInvalidIdentity = errors.New("identity must be a valid 32-byte hex address")
	// ErrUnexpectedHoldingAccount is returned when a supplied holding account
	// differs from the canonical address derived for its (asset, owner) pair.
	ErrUnexpectedHoldingAccount = errors.New("supplied holding account does not match the derived canonical address")
	// ErrCorruptedOfferRecord is returned when a stored offer record does not
	// re-derive to the address it was loaded from.
	ErrCorruptedOfferRecord = errors.New("offer record does not match its custody address derivation")
	// ErrInvalidNonce is returned when an operation carries a nonce other
	// than the invoking party's next expected one.
	ErrInvalidNonce = errors.New("operation nonce already consumed or out of order")
)
