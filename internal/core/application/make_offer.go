package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/pkg/identity"
)

// MakeOffer locks the offered amount of token A into a vault owned by the
// custody address derived from (maker, id) and publishes the offer record at
// that address. All steps commit together or not at all: a failure leaves no
// record, no vault and no balance change.
func (s *Service) MakeOffer(
	ctx context.Context, params MakeOfferParams,
) (*OfferInfo, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if err := identity.VerifySignature(
		params.Maker, params.Signature, params.Digest(),
	); err != nil {
		return nil, ErrInvalidSignature
	}

	offer, err := domain.NewOffer(
		params.Id, params.Maker, params.TokenMintA, params.TokenMintB,
		params.TokenBWantedAmount,
	)
	if err != nil {
		return nil, err
	}
	custodyAddress, err := offer.Address()
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			accounts := s.repoManager.AccountRepository()

			// The nonce is consumed within the same transaction, so a
			// replayed instruction can never commit twice.
			nonce, err := accounts.GetNonce(ctx, params.Maker)
			if err != nil {
				return nil, err
			}
			if params.Nonce != nonce {
				return nil, ErrInvalidNonce
			}
			if err := accounts.SetNonce(ctx, params.Maker, nonce+1); err != nil {
				return nil, err
			}

			// Ownership and mint constraints on the supplied source account
			// are checked before anything moves.
			source, err := accounts.GetHoldingAccount(ctx, params.MakerTokenAAccount)
			if err != nil {
				return nil, err
			}
			if source.Owner != params.Maker {
				return nil, domain.ErrAccountWrongOwner
			}
			if source.Asset != params.TokenMintA {
				return nil, domain.ErrMintMismatch
			}

			// Set-if-absent at the storage layer: an id reuse fails here,
			// before any balance is touched.
			if err := s.repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
				return nil, err
			}
			if err := s.ledger.DebitNative(
				ctx, params.Maker, domain.OfferAccountRent,
			); err != nil {
				return nil, err
			}

			vaultAddress, err := s.ledger.CreateHoldingAccount(
				ctx, params.TokenMintA, custodyAddress, params.Maker,
			)
			if err != nil {
				return nil, err
			}

			if err := s.ledger.Transfer(
				ctx, params.TokenMintA, params.MakerTokenAAccount, vaultAddress,
				params.TokenAOfferedAmount,
				domain.IdentityAuthority(params.Maker),
			); err != nil {
				return nil, err
			}

			return offerInfo(offer, custodyAddress, params.TokenAOfferedAmount), nil
		},
	)
	if err != nil {
		return nil, err
	}

	info := res.(*OfferInfo)
	log.WithFields(log.Fields{
		"address": info.Address,
		"id":      info.Id,
		"offered": info.TokenAOfferedAmount,
		"wanted":  info.TokenBWantedAmount,
	}).Info("offer created")
	return info, nil
}
