package domain

// Mint identifies a fungible asset type and its issuance parameters.
type Mint struct {
	// Asset in hex format.
	Asset string
	// Decimals of the asset's base unit.
	Decimals uint8
	// Total amount issued so far, in base units.
	Supply uint64
	// Identity address allowed to issue new units.
	Authority string
}

// HoldingAccount is an address associated with one (asset, owner) pair used
// to hold balances of that asset. The owner may be an identity address or a
// derived custody address (a vault).
type HoldingAccount struct {
	// Canonical address derived from (asset, owner).
	Address string
	// Asset held, in hex format.
	Asset string
	// Owner address; the only authority allowed to move the balance.
	Owner string
	// Balance in base units.
	Balance uint64
	// RentDeposit is the native-unit storage deposit refunded at close.
	RentDeposit uint64
}

// NativeBalance tracks the native units of an address, used to pay and
// reclaim storage rent.
type NativeBalance struct {
	Address string
	Balance uint64
}

// Nonce tracks the next operation nonce expected from an identity. Every
// signed operation carries and consumes exactly one value, so an observed
// instruction can never be replayed.
type Nonce struct {
	Address string
	Value   uint64
}
