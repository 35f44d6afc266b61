package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for room operations.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrDuplicateToken      = errors.New("token already in use")
	ErrTooFewParticipants  = errors.New("at least two participants required")
	ErrDuplicateName       = errors.New("participant names must be distinct")
)

// Token lengths per role. The blast radius on compromise grows with what the
// token grants, so the creator key is the longest and the participant key the
// shortest.
const (
	RoomCodeLength       = 10
	ParticipantKeyLength = 8
	CreatorKeyLength     = 12
)

// Participant is one member of a room: their secret key, who they give a gift
// to, and the anonymized number taped to the gift.
// swagger:model Participant
type Participant struct {
	ID         string `json:"-"`
	RoomID     string `json:"-"`
	Name       string `json:"name"`
	Key        string `json:"key"`
	AssignedTo string `json:"assigned_to"`
	GiftNumber int    `json:"gift_number"`
}

// Room is one gift-exchange group. Code is the public identifier shown after
// creation; CreatorKey is the privileged secret that reveals every
// assignment. Rooms are immutable once created.
// swagger:model Room
type Room struct {
	ID           string         `json:"-"`
	Code         string         `json:"code"`
	CreatorKey   string         `json:"creator_key,omitempty"`
	Participants []*Participant `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewRoom returns a Room with the given identifiers and participants in
// submission order. Row IDs are set by the repository on create.
func NewRoom(code, creatorKey string, participants []*Participant, createdAt time.Time) *Room {
	return &Room{
		Code:         code,
		CreatorKey:   creatorKey,
		Participants: participants,
		CreatedAt:    createdAt,
	}
}

// Names returns the participant names in submission order.
func (r *Room) Names() []string {
	names := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		names[i] = p.Name
	}
	return names
}

// ParticipantLookup is the result of resolving a participant key: the
// participant's own assignment plus just enough room context (the name list)
// for the caller's reveal UI. Other participants' assignments and keys are
// deliberately absent.
type ParticipantLookup struct {
	RoomCode    string
	Names       []string
	Participant *Participant
}

// KeyGenerator issues opaque secret tokens. Implementations must not depend
// on a predictable seed; collision handling belongs to the store, not here.
type KeyGenerator interface {
	NewToken(length int) (string, error)
}

// RoomRepository defines storage operations for rooms. There is no update or
// delete: rooms are write-once. Create must be atomic and must surface
// ErrDuplicateToken when a code or key collides with an existing record.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByCode(ctx context.Context, code string) (*Room, error)
	GetByCreatorKey(ctx context.Context, key string) (*Room, error)
	GetParticipantByKey(ctx context.Context, key string) (*Room, *Participant, error)
}

// RoomService defines the business logic for creating rooms and resolving
// secret keys. The three lookups are pure reads.
type RoomService interface {
	CreateRoom(ctx context.Context, names []string) (*Room, error)
	FindRoomByCode(ctx context.Context, code string) (*Room, error)
	FindRoomByCreatorKey(ctx context.Context, key string) (*Room, error)
	FindParticipantByKey(ctx context.Context, key string) (*ParticipantLookup, error)
}
