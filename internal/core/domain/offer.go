package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/escrow-network/escrowd/pkg/pda"
	"github.com/shopspring/decimal"
)

// offerDiscriminator tags the first 8 bytes of every serialized offer record
// so external readers can recognize and version the layout.
var offerDiscriminator = func() []byte {
	sum := sha256.Sum256([]byte("escrowd:account:offer:v1"))
	return sum[:8]
}()

// OfferSerializedSize is the exact size of the on-store offer layout:
// 8-byte discriminator, id u64 LE, maker 32B, tokenMintA 32B, tokenMintB 32B,
// tokenBWantedAmount u64 LE, bump u8.
const OfferSerializedSize = 8 + 8 + 32 + 32 + 32 + 8 + 1

// Offer defines the Offer entity data structure holding the terms of an open
// swap. It is immutable between creation and settlement; there is no update
// path by design.
type Offer struct {
	// Caller-chosen discriminator, unique per maker among open offers.
	Id uint64
	// Identity address of the party who locked the offered asset.
	Maker string
	// Offered asset in hex format.
	TokenMintA string
	// Requested asset in hex format.
	TokenMintB string
	// Exact quantity of the requested asset the taker must pay.
	TokenBWantedAmount uint64
	// Derivation salt certifying the custody address derivation.
	Bump uint8
}

// NewOffer returns a validated offer with the custody bump already derived
// from the (maker, id) pair.
func NewOffer(
	id uint64, maker, tokenMintA, tokenMintB string, tokenBWantedAmount uint64,
) (*Offer, error) {
	if !isValidAddress(maker) {
		return nil, ErrOfferInvalidMaker
	}
	if !isValidAddress(tokenMintA) || !isValidAddress(tokenMintB) {
		return nil, ErrOfferInvalidAsset
	}
	if tokenMintA == tokenMintB {
		return nil, ErrOfferSameAsset
	}
	if tokenBWantedAmount == 0 {
		return nil, ErrInvalidAmount
	}

	_, bump, err := pda.CustodyAddress(maker, id)
	if err != nil {
		return nil, err
	}

	return &Offer{
		Id:                 id,
		Maker:              maker,
		TokenMintA:         tokenMintA,
		TokenMintB:         tokenMintB,
		TokenBWantedAmount: tokenBWantedAmount,
		Bump:               bump,
	}, nil
}

// Address re-derives the custody address owning the offer record and its
// vault from the recorded (maker, id, bump).
func (o *Offer) Address() (string, error) {
	return pda.CustodyAddressWithBump(o.Maker, o.Id, o.Bump)
}

// VaultAddress returns the address of the vault holding account, owned by the
// custody address for the life of the offer.
func (o *Offer) VaultAddress() (string, error) {
	custodyAddress, err := o.Address()
	if err != nil {
		return "", err
	}
	return pda.HoldingAddress(o.TokenMintA, custodyAddress)
}

// Price returns how much of token B is asked for one unit of token A.
func (o *Offer) Price(tokenAOfferedAmount uint64) decimal.Decimal {
	if tokenAOfferedAmount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromUint64(o.TokenBWantedAmount).
		Div(decimal.NewFromUint64(tokenAOfferedAmount))
}

// Serialize encodes the offer in its fixed binary layout.
func (o *Offer) Serialize() []byte {
	buf := make([]byte, 0, OfferSerializedSize)
	buf = append(buf, offerDiscriminator...)

	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, o.Id)
	buf = append(buf, idBytes...)

	makerBytes, _ := hex.DecodeString(o.Maker)
	buf = append(buf, makerBytes...)
	mintABytes, _ := hex.DecodeString(o.TokenMintA)
	buf = append(buf, mintABytes...)
	mintBBytes, _ := hex.DecodeString(o.TokenMintB)
	buf = append(buf, mintBBytes...)

	wantedBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(wantedBytes, o.TokenBWantedAmount)
	buf = append(buf, wantedBytes...)

	return append(buf, o.Bump)
}

// DeserializeOffer decodes an offer record from its fixed binary layout.
func DeserializeOffer(buf []byte) (*Offer, error) {
	if len(buf) != OfferSerializedSize {
		return nil, ErrOfferInvalidLayout
	}
	for i, b := range offerDiscriminator {
		if buf[i] != b {
			return nil, ErrOfferInvalidLayout
		}
	}

	offset := 8
	id := binary.LittleEndian.Uint64(buf[offset : offset+8])
	offset += 8
	maker := hex.EncodeToString(buf[offset : offset+32])
	offset += 32
	tokenMintA := hex.EncodeToString(buf[offset : offset+32])
	offset += 32
	tokenMintB := hex.EncodeToString(buf[offset : offset+32])
	offset += 32
	wantedAmount := binary.LittleEndian.Uint64(buf[offset : offset+8])
	offset += 8
	bump := buf[offset]

	return &Offer{
		Id:                 id,
		Maker:              maker,
		TokenMintA:         tokenMintA,
		TokenMintB:         tokenMintB,
		TokenBWantedAmount: wantedAmount,
		Bump:               bump,
	}, nil
}

func isValidAddress(addr string) bool {
	return pda.IsValidAddress(addr)
}
