package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settlement is the audit record persisted when an offer is taken. Unlike the
// offer record it survives settlement; it is the only trace left once the
// offer and its vault are destroyed.
type Settlement struct {
	Id             uuid.UUID
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

// NewSettlement returns a settlement receipt for a taken offer.
func NewSettlement(
	offer *Offer, custodyAddress, taker string, tokenAAmount uint64,
) *Settlement {
	return &Settlement{
		Id:             uuid.New(),
		OfferId:        offer.Id,
		CustodyAddress: custodyAddress,
		Maker:          offer.Maker,
		Taker:          taker,
		TokenMintA:     offer.TokenMintA,
		TokenMintB:     offer.TokenMintB,
		TokenAAmount:   tokenAAmount,
		TokenBAmount:   offer.TokenBWantedAmount,
		SettledAt:      time.Now().Unix(),
	}
}
