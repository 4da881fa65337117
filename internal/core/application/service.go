// Package application implements the two escrow operations, MakeOffer and
// TakeOffer, each executed as a single all-or-nothing transaction over the
// store. Cancellation of an open offer is deliberately absent; when it lands
// it will be a third operation on this service, not an overload of TakeOffer.
package application

import (
	"context"
	"fmt"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/pkg/pda"
)

// Service exposes the offer lifecycle entry points.
type Service struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
}

func NewService(
	repoManager ports.RepoManager, ledger ports.Ledger,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if ledger == nil {
		return nil, fmt.Errorf("missing ledger")
	}
	return &Service{repoManager, ledger}, nil
}

// GetOffer returns a consistent view of the offer record and its vault
// balance at the given custody address.
func (s *Service) GetOffer(
	ctx context.Context, custodyAddress string,
) (*OfferInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			offer, err := s.repoManager.OfferRepository().GetOffer(ctx, custodyAddress)
			if err != nil {
				return nil, err
			}
			vaultBalance, err := s.vaultBalance(ctx, offer)
			if err != nil {
				return nil, err
			}
			return offerInfo(offer, custodyAddress, vaultBalance), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*OfferInfo), nil
}

// ListOffers returns every open offer.
func (s *Service) ListOffers(ctx context.Context) ([]OfferInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			offers, err := s.repoManager.OfferRepository().GetAllOffers(ctx)
			if err != nil {
				return nil, err
			}

			list := make([]OfferInfo, 0, len(offers))
			for i := range offers {
				offer := offers[i]
				custodyAddress, err := offer.Address()
				if err != nil {
					return nil, err
				}
				vaultBalance, err := s.vaultBalance(ctx, &offer)
				if err != nil {
					return nil, err
				}
				list = append(list, *offerInfo(&offer, custodyAddress, vaultBalance))
			}
			return list, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]OfferInfo), nil
}

// GetNonce returns the next operation nonce expected from the given address,
// the one its next signed instruction must carry.
func (s *Service) GetNonce(ctx context.Context, address string) (uint64, error) {
	if !pda.IsValidAddress(address) {
		return 0, ErrInvalidIdentity
	}
	return s.repoManager.AccountRepository().GetNonce(ctx, address)
}

// ListSettlements returns the audit trail of settled offers.
func (s *Service) ListSettlements(ctx context.Context) ([]SettlementInfo, error) {
	settlements, err := s.repoManager.SettlementRepository().GetAllSettlements(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]SettlementInfo, 0, len(settlements))
	for i := range settlements {
		list = append(list, *settlementInfo(&settlements[i]))
	}
	return list, nil
}

func (s *Service) vaultBalance(
	ctx context.Context, offer *domain.Offer,
) (uint64, error) {
	vaultAddress, err := offer.VaultAddress()
	if err != nil {
		return 0, err
	}
	vault, err := s.repoManager.AccountRepository().GetHoldingAccount(ctx, vaultAddress)
	if err != nil {
		return 0, err
	}
	return vault.Balance, nil
}
