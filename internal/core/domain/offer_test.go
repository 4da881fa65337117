package domain_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/pkg/identity"
	"github.com/escrow-network/escrowd/pkg/pda"
)

func TestNewOffer(t *testing.T) {
	t.Parallel()

	maker := newAddress(t)
	mintA := newAddress(t)
	mintB := newAddress(t)

	offer, err := domain.NewOffer(7, maker, mintA, mintB, 2_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(7), offer.Id)
	require.Equal(t, maker, offer.Maker)
	require.Equal(t, uint64(2_000_000), offer.TokenBWantedAmount)

	// The recorded bump re-derives the custody address deterministically.
	addr, err := offer.Address()
	require.NoError(t, err)
	expected, bump, err := pda.CustodyAddress(maker, 7)
	require.NoError(t, err)
	require.Equal(t, expected, addr)
	require.Equal(t, bump, offer.Bump)
}

func TestFailingNewOffer(t *testing.T) {
	t.Parallel()

	maker := newAddress(t)
	mintA := newAddress(t)
	mintB := newAddress(t)

	tests := []struct {
		name          string
		maker         string
		mintA         string
		mintB         string
		wantedAmount  uint64
		expectedError error
	}{
		{
			name: "invalid_maker", maker: "bad", mintA: mintA, mintB: mintB,
			wantedAmount: 1, expectedError: domain.ErrOfferInvalidMaker,
		},
		{
			name: "invalid_asset", maker: maker, mintA: "bad", mintB: mintB,
			wantedAmount: 1, expectedError: domain.ErrOfferInvalidAsset,
		},
		{
			name: "same_asset", maker: maker, mintA: mintA, mintB: mintA,
			wantedAmount: 1, expectedError: domain.ErrOfferSameAsset,
		},
		{
			name: "zero_amount", maker: maker, mintA: mintA, mintB: mintB,
			wantedAmount: 0, expectedError: domain.ErrInvalidAmount,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offer, err := domain.NewOffer(
				1, tt.maker, tt.mintA, tt.mintB, tt.wantedAmount,
			)
			require.Nil(t, offer)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestOfferSerialization(t *testing.T) {
	t.Parallel()

	maker := newAddress(t)
	offer, err := domain.NewOffer(
		0xdeadbeef, maker, newAddress(t), newAddress(t), 2_000_000,
	)
	require.NoError(t, err)

	buf := offer.Serialize()
	require.Len(t, buf, domain.OfferSerializedSize)

	// Fixed layout: id is a little-endian u64 at offset 8, the wanted amount
	// at offset 112, the bump is the final byte.
	require.Equal(t, uint64(0xdeadbeef), binary.LittleEndian.Uint64(buf[8:16]))
	require.Equal(t, uint64(2_000_000), binary.LittleEndian.Uint64(buf[112:120]))
	require.Equal(t, offer.Bump, buf[120])

	decoded, err := domain.DeserializeOffer(buf)
	require.NoError(t, err)
	require.Equal(t, offer, decoded)
}

func TestFailingOfferDeserialization(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(
		1, newAddress(t), newAddress(t), newAddress(t), 10,
	)
	require.NoError(t, err)
	buf := offer.Serialize()

	_, err = domain.DeserializeOffer(buf[:len(buf)-1])
	require.ErrorIs(t, err, domain.ErrOfferInvalidLayout)

	corrupted := append([]byte{}, buf...)
	corrupted[0] ^= 0xff
	_, err = domain.DeserializeOffer(corrupted)
	require.ErrorIs(t, err, domain.ErrOfferInvalidLayout)
}

func TestOfferPrice(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(
		1, newAddress(t), newAddress(t), newAddress(t), 2_000_000,
	)
	require.NoError(t, err)

	require.Equal(t, "2", offer.Price(1_000_000).String())
	require.True(t, offer.Price(0).IsZero())

	// Amounts above MaxInt64 must not go negative.
	huge, err := domain.NewOffer(
		2, newAddress(t), newAddress(t), newAddress(t), math.MaxUint64,
	)
	require.NoError(t, err)
	require.Equal(t, "1", huge.Price(math.MaxUint64).String())
	require.True(t, huge.Price(1).IsPositive())
}

func TestDerivedAuthority(t *testing.T) {
	t.Parallel()

	maker := newAddress(t)
	offer, err := domain.NewOffer(
		9, maker, newAddress(t), newAddress(t), 100,
	)
	require.NoError(t, err)

	custodyAddress, err := offer.Address()
	require.NoError(t, err)

	authority := domain.DerivedAuthority{
		Maker: maker, Id: offer.Id, Bump: offer.Bump,
	}
	resolved, err := authority.AuthorityAddress()
	require.NoError(t, err)
	require.Equal(t, custodyAddress, resolved)

	// A tampered id resolves to a different address (or fails), never to the
	// vault owner.
	tampered := domain.DerivedAuthority{Maker: maker, Id: 10, Bump: offer.Bump}
	if resolved, err := tampered.AuthorityAddress(); err == nil {
		require.NotEqual(t, custodyAddress, resolved)
	}
}

func newAddress(t *testing.T) string {
	t.Helper()
	keyPair, err := identity.NewKeyPair()
	require.NoError(t, err)
	return keyPair.Address()
}
