package session

import (
	"context"
	"errors"

	"bonushunt/internal/store"
)

// Store is the slice of the repository the session snapshot needs.
type Store interface {
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByKickID(ctx context.Context, kickID string) (*store.User, error)
}

type Service struct {
	store Store
}

func NewService(st Store) *Service {
	return &Service{store: st}
}

// Snapshot resolves the cookie identity into the session payload. An
// anonymous request gets {user: null}; a cookie pointing at a missing user
// row degrades to a zero balance rather than an error, since the cookies
// are owned by the external auth flow.
func (s *Service) Snapshot(ctx context.Context, ident Identity) (*SnapshotResponse, error) {
	if ident.Anonymous() {
		return &SnapshotResponse{User: nil}, nil
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
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var points int64
	if u != nil {
		points = u.PointsBalance
	}
	return &SnapshotResponse{
		User: &UserPayload{
			ID:            ident.UserID,
			KickID:        ident.KickID,
			Username:      ident.Username,
			AvatarURL:     ident.AvatarURL,
			PointsBalance: points,
		},
		Username:  ident.Username,
		Points:    points,
		AvatarURL: ident.AvatarURL,
	}, nil
}
