package identity_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/pkg/identity"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	keyPair, err := identity.NewKeyPair()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("test message"))
	sig, err := keyPair.Sign(digest[:])
	require.NoError(t, err)

	require.NoError(t, identity.VerifySignature(keyPair.Address(), sig, digest[:]))

	// A different digest must not verify.
	otherDigest := sha256.Sum256([]byte("another message"))
	err = identity.VerifySignature(keyPair.Address(), sig, otherDigest[:])
	require.ErrorIs(t, err, identity.ErrInvalidSignature)

	// Another identity must not verify.
	otherKeyPair, err := identity.NewKeyPair()
	require.NoError(t, err)
	err = identity.VerifySignature(otherKeyPair.Address(), sig, digest[:])
	require.ErrorIs(t, err, identity.ErrInvalidSignature)
}

func TestKeyPairSerialization(t *testing.T) {
	t.Parallel()

	keyPair, err := identity.NewKeyPair()
	require.NoError(t, err)

	restored, err := identity.KeyPairFromHex(keyPair.Serialize())
	require.NoError(t, err)
	require.Equal(t, keyPair.Address(), restored.Address())

	_, err = identity.KeyPairFromHex("not-hex")
	require.Error(t, err)
	_, err = identity.KeyPairFromHex("abcd")
	require.Error(t, err)
}

func TestSignRejectsBadDigest(t *testing.T) {
	t.Parallel()

	keyPair, err := identity.NewKeyPair()
	require.NoError(t, err)

	_, err = keyPair.Sign([]byte("short"))
	require.ErrorIs(t, err, identity.ErrInvalidDigest)
}
