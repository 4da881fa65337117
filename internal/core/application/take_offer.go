package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/pkg/identity"
	"github.com/escrow-network/escrowd/pkg/pda"
)

// TakeOffer settles an open offer: the taker pays the recorded wanted amount
// of token B to the maker, receives the full vault balance of token A, and
// the vault and offer record are destroyed with their rent deposits refunded
// to the maker. Loading the offer record is the exclusivity mechanism: only
// one invocation can observe it live, every other fails with not-found.
func (s *Service) TakeOffer(
	ctx context.Context, params TakeOfferParams,
) (*SettlementInfo, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	custodyAddress, err := params.custodyAddress()
	if err != nil {
		return nil, err
	}
	if err := identity.VerifySignature(
		params.Taker, params.Signature, params.Digest(),
	); err != nil {
		return nil, ErrInvalidSignature
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			offers := s.repoManager.OfferRepository()
			accounts := s.repoManager.AccountRepository()

			nonce, err := accounts.GetNonce(ctx, params.Taker)
			if err != nil {
				return nil, err
			}
			if params.Nonce != nonce {
				return nil, ErrInvalidNonce
			}
			if err := accounts.SetNonce(ctx, params.Taker, nonce+1); err != nil {
				return nil, err
			}

			offer, err := offers.GetOffer(ctx, custodyAddress)
			if err != nil {
				return nil, err
			}
			if recordAddress, err := offer.Address(); err != nil ||
				recordAddress != custodyAddress {
				return nil, ErrCorruptedOfferRecord
			}

			takerTokenB, err := s.resolveHoldingAccount(
				ctx, offer.TokenMintB, params.Taker, params.TakerTokenBAccount,
				params.Taker,
			)
			if err != nil {
				return nil, err
			}
			makerTokenB, err := s.resolveHoldingAccount(
				ctx, offer.TokenMintB, offer.Maker, params.MakerTokenBAccount,
				params.Taker,
			)
			if err != nil {
				return nil, err
			}
			takerTokenA, err := s.resolveHoldingAccount(
				ctx, offer.TokenMintA, params.Taker, params.TakerTokenAAccount,
				params.Taker,
			)
			if err != nil {
				return nil, err
			}

			// Payment first. The amount comes from the immutable record, not
			// from the taker; an insufficient balance aborts here with the
			// offer and vault untouched.
			if err := s.ledger.Transfer(
				ctx, offer.TokenMintB, takerTokenB, makerTokenB,
				offer.TokenBWantedAmount, domain.IdentityAuthority(params.Taker),
			); err != nil {
				return nil, err
			}

			vaultAddress, err := offer.VaultAddress()
			if err != nil {
				return nil, err
			}
			vault, err := accounts.GetHoldingAccount(ctx, vaultAddress)
			if err != nil {
				return nil, err
			}
			vaultBalance := vault.Balance

			// The vault release is authorized by reproducing the custody
			// derivation, no private key involved.
			custodyAuthority := domain.DerivedAuthority{
				Maker: offer.Maker, Id: offer.Id, Bump: offer.Bump,
			}
			if err := s.ledger.Transfer(
				ctx, offer.TokenMintA, vaultAddress, takerTokenA, vaultBalance,
				custodyAuthority,
			); err != nil {
				return nil, err
			}

			if err := s.ledger.CloseHoldingAccount(
				ctx, vaultAddress, custodyAuthority, offer.Maker,
			); err != nil {
				return nil, err
			}

			if err := offers.DeleteOffer(ctx, custodyAddress); err != nil {
				return nil, err
			}
			if err := s.ledger.CreditNative(
				ctx, offer.Maker, domain.OfferAccountRent,
			); err != nil {
				return nil, err
			}

			settlement := domain.NewSettlement(
				offer, custodyAddress, params.Taker, vaultBalance,
			)
			if err := s.repoManager.SettlementRepository().AddSettlement(
				ctx, settlement,
			); err != nil {
				return nil, err
			}
			return settlementInfo(settlement), nil
		},
	)
	if err != nil {
		return nil, err
	}

	info := res.(*SettlementInfo)
	log.WithFields(log.Fields{
		"address":  info.CustodyAddress,
		"id":       info.OfferId,
		"taker":    info.Taker,
		"amount_a": info.TokenAAmount,
		"amount_b": info.TokenBAmount,
	}).Info("offer settled")
	return info, nil
}

// resolveHoldingAccount returns the canonical holding account for the
// (asset, owner) pair, creating it if absent with payer covering rent. A
// supplied address must match the canonical derivation.
func (s *Service) resolveHoldingAccount(
	ctx context.Context, asset, owner, supplied, payer string,
) (string, error) {
	derived, err := pda.HoldingAddress(asset, owner)
	if err != nil {
		return "", err
	}
	if supplied != "" && supplied != derived {
		return "", ErrUnexpectedHoldingAccount
	}
	return s.ledger.CreateHoldingAccount(ctx, asset, owner, payer)
}
