// Package pda implements the deterministic derivation of program-controlled
// addresses. Custody addresses are derived from a (maker, offer id) pair with
// an exhaustive bump search and are guaranteed to be off the secp256k1
// identity keyspace, so no externally-held key can ever coincide with one.
// Holding-account addresses are derived from an (asset, owner) pair.
package pda

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

const (
	custodySeed = "escrowd/custody/v1"
	holdingSeed = "escrowd/holding/v1"

	// MaxBump is the highest derivation salt tried by the bump search.
	MaxBump = 255
)

var (
	// ErrNoValidBump is returned when every bump in [0, MaxBump] lands on the
	// identity curve. The probability of this is negligible (~2^-256) but the
	// search must fail cleanly rather than degrade.
	ErrNoValidBump = errors.New("no off-curve custody address exists for the given maker and id")
	// ErrInvalidBump is returned when re-deriving with a recorded bump that
	// does not produce an off-curve address.
	ErrInvalidBump = errors.New("bump does not produce an off-curve custody address")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a 32-byte hex string")
)

// CustodyAddress derives the program-exclusive custody address for the given
// maker identity and offer id, returning the address together with the bump
// that certifies the derivation. The search starts at MaxBump and walks down,
// accepting the first candidate that does not lift to a curve point.
func CustodyAddress(maker string, id uint64) (string, uint8, error) {
	makerBytes, err := decodeAddress(maker)
	if err != nil {
		return "", 0, err
	}

	for bump := MaxBump; bump >= 0; bump-- {
		candidate := custodyCandidate(makerBytes, id, uint8(bump))
		if isOffCurve(candidate) {
			return hex.EncodeToString(candidate), uint8(bump), nil
		}
	}
	return "", 0, ErrNoValidBump
}

// CustodyAddressWithBump re-derives a custody address from a recorded bump.
// It fails with ErrInvalidBump if the candidate lies on the identity curve,
// since such an address can never have been produced by CustodyAddress.
func CustodyAddressWithBump(maker string, id uint64, bump uint8) (string, error) {
	makerBytes, err := decodeAddress(maker)
	if err != nil {
		return "", err
	}

	candidate := custodyCandidate(makerBytes, id, bump)
	if !isOffCurve(candidate) {
		return "", ErrInvalidBump
	}
	return hex.EncodeToString(candidate), nil
}

// HoldingAddress returns the canonical holding-account address for the given
// (asset, owner) pair. Both the client and the core derive it independently.
func HoldingAddress(asset, owner string) (string, error) {
	assetBytes, err := decodeAddress(asset)
	if err != nil {
		return "", err
	}
	ownerBytes, err := decodeAddress(owner)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(holdingSeed))
	h.Write(assetBytes)
	h.Write(ownerBytes)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsValidAddress reports whether the given string is a well-formed 32-byte
// hex address, custody or identity alike.
func IsValidAddress(addr string) bool {
	_, err := decodeAddress(addr)
	return err == nil
}

func custodyCandidate(maker []byte, id uint64, bump uint8) []byte {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, id)

	h := sha256.New()
	h.Write([]byte(custodySeed))
	h.Write(maker)
	h.Write(idBytes)
	h.Write([]byte{bump})
	return h.Sum(nil)
}

// isOffCurve reports whether the candidate cannot be interpreted as an x-only
// secp256k1 public key, ie. whether it lies outside the identity keyspace.
func isOffCurve(candidate []byte) bool {
	_, err := schnorr.ParsePubKey(candidate)
	return err != nil
}

func decodeAddress(addr string) ([]byte, error) {
	buf, err := hex.DecodeString(addr)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if len(buf) != 32 {
		return nil, ErrInvalidAddress
	}
	return buf, nil
}
