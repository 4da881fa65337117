package application

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/pkg/pda"
)

// MakeOfferParams carries the account context of a MakeOffer invocation.
// Signature is the maker's schnorr co-signature over Digest(); Nonce must be
// the maker's next expected operation nonce, consumed on commit.
type MakeOfferParams struct {
	Id                  uint64
	Maker               string
	TokenMintA          string
	TokenMintB          string
	TokenAOfferedAmount uint64
	TokenBWantedAmount  uint64
	// MakerTokenAAccount is the maker's existing token A holding account. It
	// must be owned by the maker and hold at least TokenAOfferedAmount.
	MakerTokenAAccount string
	Nonce              uint64
	Signature          []byte
}

func (p MakeOfferParams) validate() error {
	if !pda.IsValidAddress(p.Maker) {
		return ErrInvalidIdentity
	}
	if p.TokenAOfferedAmount == 0 || p.TokenBWantedAmount == 0 {
		return domain.ErrInvalidAmount
	}
	if !pda.IsValidAddress(p.MakerTokenAAccount) {
		return ErrUnexpectedHoldingAccount
	}
	// Mints and their distinctness are validated by domain.NewOffer.
	return nil
}

// Digest returns the canonical digest the maker signs.
func (p MakeOfferParams) Digest() []byte {
	h := sha256.New()
	h.Write([]byte("escrowd:make-offer:v1"))
	writeUint64(h, p.Id)
	writeString(h, p.Maker)
	writeString(h, p.TokenMintA)
	writeString(h, p.TokenMintB)
	writeUint64(h, p.TokenAOfferedAmount)
	writeUint64(h, p.TokenBWantedAmount)
	writeString(h, p.MakerTokenAAccount)
	writeUint64(h, p.Nonce)
	return h.Sum(nil)
}

// TakeOfferParams carries the account context of a TakeOffer invocation. The
// offer is addressed either directly via CustodyAddress or by the (Maker, Id)
// pair it derives from. The three holding accounts are optional: when empty
// the canonical derived address is used, and the taker-side accounts are
// created if absent with the taker paying rent. Signature is the taker's
// schnorr co-signature over Digest(); Nonce must be the taker's next expected
// operation nonce, consumed on commit.
type TakeOfferParams struct {
	Taker          string
	CustodyAddress string
	Maker          string
	Id             uint64
	// TakerTokenBAccount must hold at least the offer's wanted amount.
	TakerTokenBAccount string
	TakerTokenAAccount string
	MakerTokenBAccount string
	Nonce              uint64
	Signature          []byte
}

func (p TakeOfferParams) validate() error {
	if !pda.IsValidAddress(p.Taker) {
		return ErrInvalidIdentity
	}
	if p.CustodyAddress == "" && !pda.IsValidAddress(p.Maker) {
		return ErrInvalidIdentity
	}
	if p.CustodyAddress != "" && !pda.IsValidAddress(p.CustodyAddress) {
		return pda.ErrInvalidAddress
	}
	return nil
}

// custodyAddress resolves the offer's custody address from the params.
func (p TakeOfferParams) custodyAddress() (string, error) {
	if p.CustodyAddress != "" {
		return p.CustodyAddress, nil
	}
	addr, _, err := pda.CustodyAddress(p.Maker, p.Id)
	return addr, err
}

// Digest returns the canonical digest the taker signs.
func (p TakeOfferParams) Digest() []byte {
	custodyAddress, _ := p.custodyAddress()

	h := sha256.New()
	h.Write([]byte("escrowd:take-offer:v1"))
	writeString(h, custodyAddress)
	writeString(h, p.Taker)
	writeString(h, p.TakerTokenBAccount)
	writeString(h, p.TakerTokenAAccount)
	writeString(h, p.MakerTokenBAccount)
	writeUint64(h, p.Nonce)
	return h.Sum(nil)
}

// OfferInfo is the read model of an open offer.
type OfferInfo struct {
	Address             string
	Id                  uint64
	Maker               string
	TokenMintA          string
	TokenMintB          string
	TokenAOfferedAmount uint64
	TokenBWantedAmount  uint64
	Bump                uint8
	// Price is how much token B is asked for one unit of token A.
	Price string
}

func offerInfo(
	offer *domain.Offer, custodyAddress string, vaultBalance uint64,
) *OfferInfo {
	return &OfferInfo{
		Address:             custodyAddress,
		Id:                  offer.Id,
		Maker:               offer.Maker,
		TokenMintA:          offer.TokenMintA,
		TokenMintB:          offer.TokenMintB,
		TokenAOfferedAmount: vaultBalance,
		TokenBWantedAmount:  offer.TokenBWantedAmount,
		Bump:                offer.Bump,
		Price:               offer.Price(vaultBalance).String(),
	}
}

// SettlementInfo is the read model of a settlement receipt.
type SettlementInfo struct {
	Id             string
	OfferId        uint64
	CustodyAddress string
	Maker          string
	Taker          string
	TokenMintA     string
	TokenMintB     string
	TokenAAmount   uint64
	TokenBAmount   uint64
	SettledAt      int64
}

func settlementInfo(s *domain.Settlement) *SettlementInfo {
	return &SettlementInfo{
		Id:             s.Id.String(),
		OfferId:        s.OfferId,
		CustodyAddress: s.CustodyAddress,
		Maker:          s.Maker,
		Taker:          s.Taker,
		TokenMintA:     s.TokenMintA,
		TokenMintB:     s.TokenMintB,
		TokenAAmount:   s.TokenAAmount,
		TokenBAmount:   s.TokenBAmount,
		SettledAt:      s.SettledAt,
	}
}

func writeUint64(h hash.Hash, v uint64) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	h.Write(buf)
}

func writeString(h hash.Hash, s string) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(len(s)))
	h.Write(buf)
	h.Write([]byte(s))
}
