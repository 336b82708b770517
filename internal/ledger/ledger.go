// Package ledger gives the point-balance mutations their domain names.
// Every debit or credit lands both on users.points_balance and as an
// append-only ledger_entries row, written in one transaction by the store.
package ledger

import (
	"context"

	"bonushunt/internal/store"
)

type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) DebitPurchase(ctx context.Context, userID, itemID string, cost int64) (int64, error) {
	return l.Store.DebitPoints(ctx, userID, cost, store.EntryPurchaseDebit, "item", itemID)
}

func (l *Ledger) RefundPurchase(ctx context.Context, userID, itemID string, cost int64) (int64, error) {
	return l.Store.CreditPoints(ctx, userID, cost, store.EntryPurchaseRefund, "item", itemID)
}

func (l *Ledger) DebitRaffleTicket(ctx context.Context, userID, raffleID string, price int64) (int64, error) {
	return l.Store.DebitPoints(ctx, userID, price, store.EntryRaffleTicketDebit, "raffle", raffleID)
}

func (l *Ledger) RefundRaffleTicket(ctx context.Context, userID, raffleID string, price int64) (int64, error) {
	return l.Store.CreditPoints(ctx, userID, price, store.EntryRaffleTicketRefund, "raffle", raffleID)
}

func (l *Ledger) SetBalance(ctx context.Context, userID string, balance int64) (int64, error) {
	return l.Store.SetPointsBalance(ctx, userID, balance)
}
