package store

import "time"

type User struct {
	ID            string
	KickID        string
	Username      string
	AvatarURL     string
	PointsBalance int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type StoreItem struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Cost        int64
	Quantity    int64
	IsAvailable bool
	CreatedAt   time.Time
}

// Redemption statuses. New rows always start pending; only the admin
// surface moves them forward.
const (
	RedemptionPending   = "pending"
	RedemptionFulfilled = "fulfilled"
	RedemptionCancelled = "cancelled"
)

type Redemption struct {
	ID        string
	UserID    string
	ItemID    string
	ItemName  string
	Cost      int64
	Status    string
	CreatedAt time.Time
}

const (
	RaffleActive = "active"
	RaffleClosed = "closed"
	RaffleDrawn  = "drawn"

	RaffleEntryFree   = "free"
	RaffleEntryPoints = "points"
)

type Raffle struct {
	ID          string
	Title       string
	Description string
	Status      string
	EntryType   string
	TicketPrice int64
	EndsAt      *time.Time
	CreatedAt   time.Time
}

type RaffleEntry struct {
	ID               string
	RaffleID         string
	UserID           string
	Username         string
	TicketsPurchased int32
	CreatedAt        time.Time
}

// Ledger entry types, one per balance mutation path.
const (
	EntryPurchaseDebit      = "purchase_debit"
	EntryPurchaseRefund     = "purchase_refund"
	EntryRaffleTicketDebit  = "raffle_ticket_debit"
	EntryRaffleTicketRefund = "raffle_ticket_refund"
	EntryAdminSet           = "admin_set"
)

type LedgerEntry struct {
	ID        string
	UserID    string
	Type      string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type LedgerFilter struct {
	UserID string
	Type   string
	From   *time.Time
	To     *time.Time
}

type LeaderboardRow struct {
	Username      string
	AvatarURL     string
	PointsBalance int64
}
