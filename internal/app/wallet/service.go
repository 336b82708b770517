// Package wallet is the transaction coordinator for everything that moves
// points: store purchases, raffle entries, and administrative balance sets.
// Validation happens up front with no mutation; writes run as sagas with
// typed compensations (see saga.go).
package wallet

import (
	"context"
	"errors"
	"expvar"
	"math"

	"bonushunt/internal/app/session"
	"bonushunt/internal/store"
)

var (
	purchaseTotal        = expvar.NewInt("wallet_purchase_total")
	purchaseFailedTotal  = expvar.NewInt("wallet_purchase_failed_total")
	raffleEntryTotal     = expvar.NewInt("wallet_raffle_entry_total")
	compensationRunTotal = expvar.NewInt("wallet_compensation_run_total")
)

// Store is the read/write surface the coordinator consumes. *store.Store
// satisfies it; tests use an in-memory fake.
type Store interface {
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByKickID(ctx context.Context, kickID string) (*store.User, error)
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
	GetStoreItem(ctx context.Context, id string) (*store.StoreItem, error)
	TakeStoreItemStock(ctx context.Context, itemID string) error
	RestoreStoreItemStock(ctx context.Context, itemID string) error
	InsertRedemption(ctx context.Context, userID, itemID, itemName string, cost int64) (string, error)
	GetRaffle(ctx context.Context, id string) (*store.Raffle, error)
	HasRaffleEntry(ctx context.Context, raffleID, userID string) (bool, error)
	InsertRaffleEntry(ctx context.Context, raffleID, userID, username string) (string, error)
}

// Ledger moves points and records the audit entry atomically.
// *ledger.Ledger satisfies it.
type Ledger interface {
	DebitPurchase(ctx context.Context, userID, itemID string, cost int64) (int64, error)
	RefundPurchase(ctx context.Context, userID, itemID string, cost int64) (int64, error)
	DebitRaffleTicket(ctx context.Context, userID, raffleID string, price int64) (int64, error)
	RefundRaffleTicket(ctx context.Context, userID, raffleID string, price int64) (int64, error)
	SetBalance(ctx context.Context, userID string, balance int64) (int64, error)
}

type Service struct {
	store  Store
	ledger Ledger
}

func NewService(st Store, led Ledger) *Service {
	return &Service{store: st, ledger: led}
}

// Purchase validates in the fixed order (available, stock, funds), then
// runs debit -> stock decrement -> redemption append. A stock-decrement
// failure refunds the debit; a redemption-append failure is tolerated.
func (s *Service) Purchase(ctx context.Context, ident session.Identity, itemID string) (*PurchaseResult, error) {
	purchaseTotal.Add(1)
	if ident.Anonymous() {
		return nil, ErrNotAuthenticated
	}
	if itemID == "" {
		return nil, ErrInvalidRequest
	}
	user, err := s.resolveUser(ctx, ident)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetStoreItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrUnavailable
	}
	if item.Quantity <= 0 {
		return nil, ErrOutOfStock
	}
	if user.PointsBalance < item.Cost {
		return nil, ErrInsufficientPoints
	}

	var newBalance int64
	steps := []sagaStep{
		{
			name: "debit_points",
			run: func(ctx context.Context) error {
				bal, err := s.ledger.DebitPurchase(ctx, user.ID, item.ID, item.Cost)
				if err != nil {
					// a concurrent spend can invalidate the pre-check
					if errors.Is(err, store.ErrInsufficientPoints) {
						return ErrInsufficientPoints
					}
					return err
				}
				newBalance = bal
				return nil
			},
			compensate: func(ctx context.Context) error {
				compensationRunTotal.Add(1)
				_, err := s.ledger.RefundPurchase(ctx, user.ID, item.ID, item.Cost)
				return err
			},
		},
		{
			name: "take_stock",
			run: func(ctx context.Context) error {
				if err := s.store.TakeStoreItemStock(ctx, item.ID); err != nil {
					if errors.Is(err, store.ErrOutOfStock) {
						return ErrOutOfStock
					}
					return err
				}
				return nil
			},
			compensate: func(ctx context.Context) error {
				compensationRunTotal.Add(1)
				return s.store.RestoreStoreItemStock(ctx, item.ID)
			},
		},
		{
			name:       "append_redemption",
			bestEffort: true,
			run: func(ctx context.Context) error {
				_, err := s.store.InsertRedemption(ctx, user.ID, item.ID, item.Name, item.Cost)
				return err
			},
		},
	}

	if err := runSaga(ctx, "purchase", steps); err != nil {
		purchaseFailedTotal.Add(1)
		if errors.Is(err, ErrInsufficientPoints) || errors.Is(err, ErrOutOfStock) {
			return nil, err
		}
		return nil, ErrTransactionFailed
	}
	return &PurchaseResult{NewBalance: newBalance, ItemName: item.Name}, nil
}

// EnterRaffle appends exactly one entry per (raffle, user), charging the
// ticket price first unless the raffle is free.
func (s *Service) EnterRaffle(ctx context.Context, ident session.Identity, raffleID string) error {
	raffleEntryTotal.Add(1)
	if ident.Anonymous() {
		return ErrNotAuthenticated
	}
	if raffleID == "" {
		return ErrInvalidRequest
	}
	user, err := s.resolveUser(ctx, ident)
	if err != nil {
		return err
	}
	raffle, err := s.store.GetRaffle(ctx, raffleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if raffle.Status != store.RaffleActive {
		return ErrRaffleNotActive
	}
	entered, err := s.store.HasRaffleEntry(ctx, raffle.ID, user.ID)
	if err != nil {
		return err
	}
	if entered {
		return ErrAlreadyEntered
	}

	isFree := raffle.EntryType == store.RaffleEntryFree || raffle.TicketPrice == 0
	if !isFree && user.PointsBalance < raffle.TicketPrice {
		return ErrInsufficientPoints
	}

	var steps []sagaStep
	if !isFree {
		steps = append(steps, sagaStep{
			name: "debit_ticket",
			run: func(ctx context.Context) error {
				_, err := s.ledger.DebitRaffleTicket(ctx, user.ID, raffle.ID, raffle.TicketPrice)
				if err != nil && errors.Is(err, store.ErrInsufficientPoints) {
					return ErrInsufficientPoints
				}
				return err
			},
			compensate: func(ctx context.Context) error {
				compensationRunTotal.Add(1)
				_, err := s.ledger.RefundRaffleTicket(ctx, user.ID, raffle.ID, raffle.TicketPrice)
				return err
			},
		})
	}
	steps = append(steps, sagaStep{
		name: "append_entry",
		run: func(ctx context.Context) error {
			_, err := s.store.InsertRaffleEntry(ctx, raffle.ID, user.ID, user.Username)
			if err != nil && errors.Is(err, store.ErrDuplicate) {
				// lost the race to ourselves; the unique constraint holds
				return ErrAlreadyEntered
			}
			return err
		},
	})

	if err := runSaga(ctx, "raffle_entry", steps); err != nil {
		if errors.Is(err, ErrInsufficientPoints) || errors.Is(err, ErrAlreadyEntered) {
			return err
		}
		return ErrTransactionFailed
	}
	return nil
}

// SetPoints is the administrative balance overwrite fed by the chat bot.
// The target is floored; NaN, infinities, and negatives are rejected before
// any lookup.
func (s *Service) SetPoints(ctx context.Context, username string, points float64) (*SetPointsResult, error) {
	if username == "" {
		return nil, ErrInvalidRequest
	}
	if math.IsNaN(points) || math.IsInf(points, 0) || points < 0 {
		return nil, ErrInvalidValue
	}
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target := int64(math.Floor(points))
	prev, err := s.ledger.SetBalance(ctx, user.ID, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &SetPointsResult{
		Username:       user.Username,
		PreviousPoints: prev,
		NewPoints:      target,
	}, nil
}

func (s *Service) resolveUser(ctx context.Context, ident session.Identity) (*store.User, error) {
	var (
		u   *store.User
		err error
	)
	if ident.UserID != "" {
		u, err = s.store.GetUserByID(ctx, ident.UserID)
	} else {
		u, err = s.store.GetUserByKickID(ctx, ident.KickID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
