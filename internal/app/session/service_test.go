package session

import (
	"context"
	"testing"

	"bonushunt/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID     map[string]*store.User
	byKickID map[string]*store.User
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*store.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByKickID(_ context.Context, kickID string) (*store.User, error) {
	if u, ok := f.byKickID[kickID]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func TestSnapshotAnonymous(t *testing.T) {
	svc := NewService(&fakeStore{})

	resp, err := svc.Snapshot(context.Background(), Identity{})
	require.NoError(t, err)
	require.Nil(t, resp.User)
}

func TestSnapshotKnownUser(t *testing.T) {
	u := &store.User{ID: "u1", KickID: "k1", Username: "alice", PointsBalance: 420}
	svc := NewService(&fakeStore{byID: map[string]*store.User{"u1": u}})

	resp, err := svc.Snapshot(context.Background(), Identity{
		UserID: "u1", KickID: "k1", Username: "alice", AvatarURL: "https://cdn/a.png",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.EqualValues(t, 420, resp.User.PointsBalance)
	require.EqualValues(t, 420, resp.Points)
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "https://cdn/a.png", resp.AvatarURL)
}

func TestSnapshotFallsBackToKickID(t *testing.T) {
	u := &store.User{ID: "u1", KickID: "k1", Username: "alice", PointsBalance: 7}
	svc := NewService(&fakeStore{byKickID: map[string]*store.User{"k1": u}})

	resp, err := svc.Snapshot(context.Background(), Identity{KickID: "k1", Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.EqualValues(t, 7, resp.Points)
}

func TestSnapshotMissingRowDegradesToZero(t *testing.T) {
	svc := NewService(&fakeStore{})

	resp, err := svc.Snapshot(context.Background(), Identity{UserID: "gone", Username: "ghost"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.EqualValues(t, 0, resp.Points)
	require.Equal(t, "ghost", resp.Username)
}
