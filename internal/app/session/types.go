package session

// Identity is the request-scoped credential set taken from the site's
// cookies. It is opaque external input; nothing here issues or verifies
// sessions.
type Identity struct {
	KickID    string
	UserID    string
	Username  string
	AvatarURL string
}

func (id Identity) Anonymous() bool {
	return id.KickID == "" && id.UserID == ""
}

type UserPayload struct {
	ID            string `json:"id"`
	KickID        string `json:"kick_id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	PointsBalance int64  `json:"points_balance"`
}

// SnapshotResponse mirrors the shape the site's widgets poll: the nested
// user plus flattened username/points/avatar for older consumers.
type SnapshotResponse struct {
	User      *UserPayload `json:"user"`
	Username  string       `json:"username,omitempty"`
	Points    int64        `json:"points"`
	AvatarURL string       `json:"avatar_url,omitempty"`
}
