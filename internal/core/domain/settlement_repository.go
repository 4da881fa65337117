package domain

import "context"

// SettlementRepository is the append-only store of settlement receipts.
type SettlementRepository interface {
	AddSettlement(ctx context.Context, settlement *Settlement) error
	GetAllSettlements(ctx context.Context) ([]Settlement, error)
}
