package site

import "time"

type StoreItemsResponse struct {
	Items []StoreItemPayload `json:"items"`
}

type StoreItemPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Cost        int64     `json:"cost"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

type RafflesResponse struct {
	Items  []RafflePayload `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type RafflePayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	EntryType   string     `json:"entry_type"`
	TicketPrice int64      `json:"ticket_price"`
	EntryCount  int64      `json:"entry_count"`
	EndsAt      *time.Time `json:"ends_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RaffleDetailResponse struct {
	Raffle  RafflePayload        `json:"raffle"`
	Entries []RaffleEntryPayload `json:"entries"`
}

type RaffleEntryPayload struct {
	Username  string    `json:"username"`
	Tickets   int32     `json:"tickets"`
	EnteredAt time.Time `json:"entered_at"`
}

type LeaderboardResponse struct {
	Items  []LeaderboardEntryPayload `json:"items"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

type LeaderboardEntryPayload struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Points    int64  `json:"points"`
}

type ProfileResponse struct {
	Username      string              `json:"username"`
	AvatarURL     string              `json:"avatar_url,omitempty"`
	PointsBalance int64               `json:"points_balance"`
	Redemptions   []RedemptionPayload `json:"redemptions"`
	RaffleEntries []ProfileEntry      `json:"raffle_entries"`
}

type RedemptionPayload struct {
	ID        string    `json:"id"`
	ItemName  string    `json:"item_name"`
	Cost      int64     `json:"cost"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileEntry struct {
	RaffleID  string    `json:"raffle_id"`
	Tickets   int32     `json:"tickets"`
	EnteredAt time.Time `json:"entered_at"`
}
