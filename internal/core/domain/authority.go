package domain

import "github.com/escrow-network/escrowd/pkg/pda"

// Authority authorizes moving funds out of a holding account. It resolves to
// the address that must own the paying account; the resolution itself is the
// capability: identities prove control by co-signing the operation, derived
// authorities by reproducing the custody derivation.
type Authority interface {
	AuthorityAddress() (string, error)
}

// IdentityAuthority is the authority of a private-key-holding party, its
// identity address.
type IdentityAuthority string

func (a IdentityAuthority) AuthorityAddress() (string, error) {
	if !isValidAddress(string(a)) {
		return "", ErrUnauthorized
	}
	return string(a), nil
}

// DerivedAuthority is a capability derived from data: any component able to
// reproduce the custody derivation of (maker, id, bump) can authorize the
// vault's one sanctioned action, releasing its balance on settlement. No
// private key is involved.
type DerivedAuthority struct {
	Maker string
	Id    uint64
	Bump  uint8
}

func (a DerivedAuthority) AuthorityAddress() (string, error) {
	return pda.CustodyAddressWithBump(a.Maker, a.Id, a.Bump)
}
