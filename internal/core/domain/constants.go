package domain

const (
	// OfferAccountRent is the native-unit storage deposit locked when an
	// offer record is created and refunded to the maker when it is closed.
	OfferAccountRent uint64 = 1_200_000
	// HoldingAccountRent is the native-unit storage deposit locked when a
	// holding account is created and refunded to its rent destination when
	// the account is closed.
	HoldingAccountRent uint64 = 2_039_280
)
