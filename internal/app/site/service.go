package site

import (
	"context"
	"errors"

	"bonushunt/internal/app/session"
	"bonushunt/internal/store"
)

// Store is the read-only repository slice behind the public pages.
type Store interface {
	ListAvailableStoreItems(ctx context.Context) ([]store.StoreItem, error)
	ListRaffles(ctx context.Context, status string, limit, offset int) ([]store.RaffleWithEntries, error)
	GetRaffle(ctx context.Context, id string) (*store.Raffle, error)
	ListRaffleEntries(ctx context.Context, raffleID string, limit, offset int) ([]store.RaffleEntry, error)
	ListTopBalances(ctx context.Context, limit, offset int) ([]store.LeaderboardRow, error)
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByKickID(ctx context.Context, kickID string) (*store.User, error)
	ListRedemptionsByUser(ctx context.Context, userID string, limit, offset int) ([]store.Redemption, error)
	ListRaffleEntriesByUser(ctx context.Context, userID string, limit, offset int) ([]store.RaffleEntry, error)
}

type Service struct {
	store       Store
	maxLeadRows int
}

func NewService(st Store, maxLeaderboardRows int) *Service {
	if maxLeaderboardRows <= 0 {
		maxLeaderboardRows = 100
	}
	return &Service{store: st, maxLeadRows: maxLeaderboardRows}
}

func (s *Service) StoreItems(ctx context.Context) (*StoreItemsResponse, error) {
	items, err := s.store.ListAvailableStoreItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StoreItemPayload, 0, len(items))
	for _, it := range items {
		out = append(out, StoreItemPayload{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			Cost:        it.Cost,
			Quantity:    it.Quantity,
			CreatedAt:   it.CreatedAt,
		})
	}
	return &StoreItemsResponse{Items: out}, nil
}

func (s *Service) Raffles(ctx context.Context, status string, limit, offset int) (*RafflesResponse, error) {
	items, err := s.store.ListRaffles(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]RafflePayload, 0, len(items))
	for _, r := range items {
		out = append(out, rafflePayload(r.Raffle, r.EntryCount))
	}
	return &RafflesResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) RaffleDetail(ctx context.Context, raffleID string, limit, offset int) (*RaffleDetailResponse, error) {
	if raffleID == "" {
		return nil, ErrInvalidRequest
	}
	raffle, err := s.store.GetRaffle(ctx, raffleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entries, err := s.store.ListRaffleEntries(ctx, raffle.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]RaffleEntryPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, RaffleEntryPayload{
			Username:  e.Username,
			Tickets:   e.TicketsPurchased,
			EnteredAt: e.CreatedAt,
		})
	}
	return &RaffleDetailResponse{
		Raffle:  rafflePayload(*raffle, int64(len(out))),
		Entries: out,
	}, nil
}

func (s *Service) Leaderboard(ctx context.Context, limit, offset int) (*LeaderboardResponse, error) {
	limit, ok := clampLeaderboardPage(limit, offset, s.maxLeadRows)
	if !ok {
		return nil, ErrInvalidRequest
	}
	rows, err := s.store.ListTopBalances(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntryPayload, 0, len(rows))
	for i, r := range rows {
		out = append(out, LeaderboardEntryPayload{
			Rank:      offset + i + 1,
			Username:  r.Username,
			AvatarURL: r.AvatarURL,
			Points:    r.PointsBalance,
		})
	}
	return &LeaderboardResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Profile(ctx context.Context, ident session.Identity) (*ProfileResponse, error) {
	if ident.Anonymous() {
		return nil, ErrNotAuthenticated
	}
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

	redemptions, err := s.store.ListRedemptionsByUser(ctx, u.ID, 50, 0)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListRaffleEntriesByUser(ctx, u.ID, 50, 0)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		Username:      u.Username,
		AvatarURL:     u.AvatarURL,
		PointsBalance: u.PointsBalance,
		Redemptions:   make([]RedemptionPayload, 0, len(redemptions)),
		RaffleEntries: make([]ProfileEntry, 0, len(entries)),
	}
	for _, r := range redemptions {
		resp.Redemptions = append(resp.Redemptions, RedemptionPayload{
			ID:        r.ID,
			ItemName:  r.ItemName,
			Cost:      r.Cost,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}
	for _, e := range entries {
		resp.RaffleEntries = append(resp.RaffleEntries, ProfileEntry{
			RaffleID:  e.RaffleID,
			Tickets:   e.TicketsPurchased,
			EnteredAt: e.CreatedAt,
		})
	}
	return resp, nil
}

func rafflePayload(r store.Raffle, entryCount int64) RafflePayload {
	return RafflePayload{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		EntryType:   r.EntryType,
		TicketPrice: r.TicketPrice,
		EntryCount:  entryCount,
		EndsAt:      r.EndsAt,
		CreatedAt:   r.CreatedAt,
	}
}

// clampLeaderboardPage keeps leaderboard reads inside the configured top-N
// window. Requests past the window are rejected rather than silently empty.
func clampLeaderboardPage(limit, offset, maxRows int) (int, bool) {
	if offset < 0 || offset >= maxRows {
		return 0, false
	}
	if limit <= 0 {
		limit = 50
	}
	if remaining := maxRows - offset; limit > remaining {
		limit = remaining
	}
	return limit, true
}
