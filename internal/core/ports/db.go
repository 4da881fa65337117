package ports

import (
	"context"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// RepoManager gives access to the repositories and to the transaction
// boundary every operation runs within.
type RepoManager interface {
	OfferRepository() domain.OfferRepository
	AccountRepository() domain.AccountRepository
	SettlementRepository() domain.SettlementRepository

	// RunTransaction executes the handler as a single all-or-nothing unit:
	// every repository call made with the handler's context is committed
	// together or not at all. Conflicting concurrent transactions are
	// serialized by the store; the loser is re-run against the committed
	// state, so racing settlements resolve to exactly one winner.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}

// Transaction interface defines the methods to commit or discard a store
// transaction.
type Transaction interface {
	Commit() error
	Discard()
}
