package services

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretsanta/internal/assign"
	"secretsanta/internal/domain"
)

// fakeKeyGenerator issues deterministic, unique tokens of the requested
// length.
type fakeKeyGenerator struct {
	n   int
	err error
}

func (f *fakeKeyGenerator) NewToken(length int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.n++
	return fmt.Sprintf("%0*d", length, f.n), nil
}

// memRoomRepo implements domain.RoomRepository in memory with the same
// global uniqueness rules as the real store. Lookups return deep copies so
// callers cannot mutate stored state.
type memRoomRepo struct {
	rooms      []*domain.Room
	createErrs []error // scripted results for successive Create calls
	creates    int
}

func (m *memRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	m.creates++
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range m.rooms {
		if existing.Code == room.Code || existing.CreatorKey == room.CreatorKey {
			return domain.ErrDuplicateToken
		}
		for _, ep := range existing.Participants {
			for _, p := range room.Participants {
				if ep.Key == p.Key {
					return domain.ErrDuplicateToken
				}
			}
		}
	}
	room.ID = fmt.Sprintf("room-%d", len(m.rooms)+1)
	for i, p := range room.Participants {
		p.ID = fmt.Sprintf("%s-p%d", room.ID, i)
		p.RoomID = room.ID
	}
	m.rooms = append(m.rooms, copyRoom(room))
	return nil
}

func (m *memRoomRepo) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	for _, r := range m.rooms {
		if r.Code == code {
			return copyRoom(r), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRoomRepo) GetByCreatorKey(ctx context.Context, key string) (*domain.Room, error) {
	for _, r := range m.rooms {
		if r.CreatorKey == key {
			return copyRoom(r), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRoomRepo) GetParticipantByKey(ctx context.Context, key string) (*domain.Room, *domain.Participant, error) {
	for _, r := range m.rooms {
		for _, p := range r.Participants {
			if p.Key == key {
				cp := *p
				return copyRoom(r), &cp, nil
			}
		}
	}
	return nil, nil, sql.ErrNoRows
}

func copyRoom(r *domain.Room) *domain.Room {
	cp := *r
	cp.Participants = make([]*domain.Participant, len(r.Participants))
	for i, p := range r.Participants {
		pc := *p
		cp.Participants[i] = &pc
	}
	return &cp
}

func newTestService(repo domain.RoomRepository) domain.RoomService {
	return NewRoomService(repo, &fakeKeyGenerator{}, assign.New(rand.New(rand.NewSource(42))))
}

func TestRoomService_CreateRoom(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{}
	svc := newTestService(repo)

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	room, err := svc.CreateRoom(ctx, names)
	require.NoError(t, err)

	require.Len(t, room.Code, domain.RoomCodeLength)
	require.Len(t, room.CreatorKey, domain.CreatorKeyLength)
	require.False(t, room.CreatedAt.IsZero())
	require.Len(t, room.Participants, len(names))

	receivers := make(map[string]int)
	giftNumbers := make(map[int]bool)
	for i, p := range room.Participants {
		assert.Equal(t, names[i], p.Name, "submission order must be preserved")
		assert.Len(t, p.Key, domain.ParticipantKeyLength)
		assert.NotEqual(t, p.Name, p.AssignedTo)
		receivers[p.AssignedTo]++
		assert.GreaterOrEqual(t, p.GiftNumber, 1)
		assert.LessOrEqual(t, p.GiftNumber, len(names))
		assert.False(t, giftNumbers[p.GiftNumber], "gift number %d repeated", p.GiftNumber)
		giftNumbers[p.GiftNumber] = true
	}
	for _, name := range names {
		assert.Equal(t, 1, receivers[name])
	}
}

func TestRoomService_CreateRoom_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		names []string
		errIs error
	}{
		{"empty", nil, domain.ErrTooFewParticipants},
		{"single name", []string{"Alice"}, domain.ErrTooFewParticipants},
		{"blank names only", []string{"  ", ""}, domain.ErrTooFewParticipants},
		{"case-insensitive duplicate", []string{"Alice", "alice", "Bob"}, domain.ErrDuplicateName},
		{"duplicate after trimming", []string{" Bob", "Bob ", "Carol"}, domain.ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&memRoomRepo{})
			_, err := svc.CreateRoom(ctx, tt.names)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestRoomService_CreateRoom_RetriesOnTokenCollision(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{createErrs: []error{domain.ErrDuplicateToken, domain.ErrDuplicateToken, nil}}
	svc := newTestService(repo)

	room, err := svc.CreateRoom(ctx, []string{"Alice", "Bob"})
	require.NoError(t, err)
	require.Equal(t, 3, repo.creates, "colliding inserts must be retried with fresh tokens")
	require.NotEmpty(t, room.Code)
}

func TestRoomService_CreateRoom_CollisionRetryExhausted(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{createErrs: []error{domain.ErrDuplicateToken, domain.ErrDuplicateToken, domain.ErrDuplicateToken}}
	svc := newTestService(repo)

	_, err := svc.CreateRoom(ctx, []string{"Alice", "Bob"})
	require.ErrorIs(t, err, domain.ErrDuplicateToken)
	require.Equal(t, createMaxAttempts, repo.creates)
}

func TestRoomService_CreateRoom_PersistenceErrorNotRetried(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{createErrs: []error{assert.AnError}}
	svc := newTestService(repo)

	_, err := svc.CreateRoom(ctx, []string{"Alice", "Bob"})
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 1, repo.creates, "store failures other than collisions must not be retried")
}

func TestRoomService_FindRoomByCode(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateRoom(ctx, []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)

	t.Run("strips creator key", func(t *testing.T) {
		room, err := svc.FindRoomByCode(ctx, created.Code)
		require.NoError(t, err)
		assert.Empty(t, room.CreatorKey, "room code lookup must never expose the creator key")
		assert.Len(t, room.Participants, 3)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.FindRoomByCode(ctx, "nosuchcode")
		require.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("consecutive lookups are identical", func(t *testing.T) {
		first, err := svc.FindRoomByCode(ctx, created.Code)
		require.NoError(t, err)
		second, err := svc.FindRoomByCode(ctx, created.Code)
		require.NoError(t, err)
		assert.Equal(t, first, second, "rooms are immutable; lookups must not drift")
	})
}

func TestRoomService_FindRoomByCreatorKey(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateRoom(ctx, []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)

	t.Run("exact key returns full room", func(t *testing.T) {
		room, err := svc.FindRoomByCreatorKey(ctx, created.CreatorKey)
		require.NoError(t, err)
		require.Equal(t, created.CreatorKey, room.CreatorKey)
		require.Len(t, room.Participants, 3)
		for _, p := range room.Participants {
			assert.NotEmpty(t, p.AssignedTo)
		}
	})

	t.Run("participant key does not escalate", func(t *testing.T) {
		_, err := svc.FindRoomByCreatorKey(ctx, created.Participants[0].Key)
		require.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("room code does not escalate", func(t *testing.T) {
		_, err := svc.FindRoomByCreatorKey(ctx, created.Code)
		require.ErrorIs(t, err, domain.ErrRoomNotFound)
	})
}

func TestRoomService_FindParticipantByKey(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateRoom(ctx, []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)
	alice := created.Participants[0]

	t.Run("own assignment only", func(t *testing.T) {
		lookup, err := svc.FindParticipantByKey(ctx, alice.Key)
		require.NoError(t, err)
		assert.Equal(t, created.Code, lookup.RoomCode)
		assert.Equal(t, "Alice", lookup.Participant.Name)
		assert.Equal(t, alice.AssignedTo, lookup.Participant.AssignedTo)
		assert.Equal(t, alice.GiftNumber, lookup.Participant.GiftNumber)
		assert.Equal(t, []string{"Alice", "Bob", "Carol"}, lookup.Names)
	})

	t.Run("creator key is not a participant key", func(t *testing.T) {
		_, err := svc.FindParticipantByKey(ctx, created.CreatorKey)
		require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.FindParticipantByKey(ctx, "nosuchkey")
		require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	})
}

// End-to-end: create a three-person room, then resolve each key class the
// way the reveal flows do.
func TestRoomService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := &memRoomRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateRoom(ctx, []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)

	full, err := svc.FindRoomByCreatorKey(ctx, created.CreatorKey)
	require.NoError(t, err)
	require.Len(t, full.Participants, 3)

	for _, p := range created.Participants {
		lookup, err := svc.FindParticipantByKey(ctx, p.Key)
		require.NoError(t, err)
		assert.Equal(t, p.Name, lookup.Participant.Name)
		assert.Equal(t, p.AssignedTo, lookup.Participant.AssignedTo)
		assert.Equal(t, p.GiftNumber, lookup.Participant.GiftNumber)
	}

	share, err := svc.FindRoomByCode(ctx, created.Code)
	require.NoError(t, err)
	assert.Empty(t, share.CreatorKey)
}
