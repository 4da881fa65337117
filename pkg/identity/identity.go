// Package identity manages the secp256k1 key pairs acting as party
// identities. A party's on-ledger address is the hex encoding of its 32-byte
// x-only public key; operations are co-signed with BIP-340 schnorr signatures
// over a canonical instruction digest.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

var (
	// ErrInvalidDigest ...
	ErrInvalidDigest = errors.New("digest must be 32 bytes")
	// ErrInvalidSignature is returned when a signature does not verify
	// against the given address and digest.
	ErrInvalidSignature = errors.New("signature verification failed")
	// ErrInvalidAddress is returned when an address is not a point on the
	// identity curve, ie. cannot have been produced by a key pair.
	ErrInvalidAddress = errors.New("address is not a valid identity public key")
)

// KeyPair wraps a secp256k1 private key.
type KeyPair struct {
	prvkey *btcec.PrivateKey
}

// NewKeyPair generates a fresh random key pair.
func NewKeyPair() (*KeyPair, error) {
	prvkey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating private key: %w", err)
	}
	return &KeyPair{prvkey}, nil
}

// KeyPairFromHex restores a key pair from its hex serialization.
func KeyPairFromHex(s string) (*KeyPair, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding private key: %w", err)
	}
	if len(buf) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(buf))
	}
	prvkey, _ := btcec.PrivKeyFromBytes(buf)
	return &KeyPair{prvkey}, nil
}

// Serialize returns the hex serialization of the private key.
func (k *KeyPair) Serialize() string {
	return hex.EncodeToString(k.prvkey.Serialize())
}

// Address returns the party's on-ledger address, the hex-encoded x-only
// public key.
func (k *KeyPair) Address() string {
	return hex.EncodeToString(schnorr.SerializePubKey(k.prvkey.PubKey()))
}

// Sign produces a schnorr signature over the given 32-byte digest.
func (k *KeyPair) Sign(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, ErrInvalidDigest
	}
	sig, err := schnorr.Sign(k.prvkey, digest)
	if err != nil {
		return nil, fmt.Errorf("signing digest: %w", err)
	}
	return sig.Serialize(), nil
}

// VerifySignature checks a schnorr signature made by the identity behind the
// given address over the given digest.
func VerifySignature(address string, sig, digest []byte) error {
	if len(digest) != 32 {
		return ErrInvalidDigest
	}
	pubkeyBytes, err := hex.DecodeString(address)
	if err != nil || len(pubkeyBytes) != 32 {
		return ErrInvalidAddress
	}
	pubkey, err := schnorr.ParsePubKey(pubkeyBytes)
	if err != nil {
		return ErrInvalidAddress
	}
	parsedSig, err := schnorr.ParseSignature(sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if !parsedSig.Verify(digest, pubkey) {
		return ErrInvalidSignature
	}
	return nil
}
