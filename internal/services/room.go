package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"secretsanta/internal/assign"
	"secretsanta/internal/domain"
)

// Token entropy makes collisions vanishingly rare, but global uniqueness is
// still enforced by the store. On a unique violation the create is retried
// with freshly drawn tokens instead of failing outright.
const createMaxAttempts = 3

type roomService struct {
	repo   domain.RoomRepository
	keys   domain.KeyGenerator
	engine *assign.Engine
}

// NewRoomService creates a RoomService from the given store, key generator,
// and assignment engine.
func NewRoomService(repo domain.RoomRepository, keys domain.KeyGenerator, engine *assign.Engine) domain.RoomService {
	return &roomService{
		repo:   repo,
		keys:   keys,
		engine: engine,
	}
}

// CreateRoom draws a derangement and gift numbers for the given names, issues
// a room code, creator key, and one key per participant, and persists the
// room atomically. The returned room is the only place the creator key and
// participant keys are ever handed out together; rooms are immutable after
// this call.
func (s *roomService) CreateRoom(ctx context.Context, names []string) (*domain.Room, error) {
	names, err := normalizeNames(names)
	if err != nil {
		return nil, err
	}

	assignments, err := s.engine.Assignments(names)
	if err != nil {
		if errors.Is(err, assign.ErrTooFewNames) {
			return nil, domain.ErrTooFewParticipants
		}
		return nil, fmt.Errorf("failed to generate assignments: %w", err)
	}
	giftNumbers := s.engine.GiftNumbers(len(names))

	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		room, err := s.composeRoom(assignments, giftNumbers)
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, room)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, domain.ErrDuplicateToken) {
			return nil, fmt.Errorf("failed to persist room: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to persist room after %d attempts: %w", createMaxAttempts, domain.ErrDuplicateToken)
}

// composeRoom zips assignments with gift numbers by position and draws a
// fresh set of tokens. Called once per insert attempt so a colliding token is
// never reused.
func (s *roomService) composeRoom(assignments []assign.Assignment, giftNumbers []int) (*domain.Room, error) {
	code, err := s.keys.NewToken(domain.RoomCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate room code: %w", err)
	}
	creatorKey, err := s.keys.NewToken(domain.CreatorKeyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate creator key: %w", err)
	}
	participants := make([]*domain.Participant, len(assignments))
	for i, a := range assignments {
		key, err := s.keys.NewToken(domain.ParticipantKeyLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate participant key: %w", err)
		}
		participants[i] = &domain.Participant{
			Name:       a.Name,
			Key:        key,
			AssignedTo: a.AssignedTo,
			GiftNumber: giftNumbers[i],
		}
	}
	return domain.NewRoom(code, creatorKey, participants, time.Now().UTC()), nil
}

// FindRoomByCode resolves the public room code. The creator key is stripped:
// it is returned exactly once, at creation time, and can never be re-derived
// from the code alone.
func (s *roomService) FindRoomByCode(ctx context.Context, code string) (*domain.Room, error) {
	room, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	room.CreatorKey = ""
	return room, nil
}

// FindRoomByCreatorKey is the privileged reveal path: the full room with
// every assignment. Possession of the key is the only credential.
func (s *roomService) FindRoomByCreatorKey(ctx context.Context, key string) (*domain.Room, error) {
	room, err := s.repo.GetByCreatorKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// FindParticipantByKey resolves a participant key to that participant's own
// assignment plus the room's name list. Nothing else about the room leaves
// this method: no creator key, no other assignments, no other keys.
func (s *roomService) FindParticipantByKey(ctx context.Context, key string) (*domain.ParticipantLookup, error) {
	room, participant, err := s.repo.GetParticipantByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &domain.ParticipantLookup{
		RoomCode:    room.Code,
		Names:       room.Names(),
		Participant: participant,
	}, nil
}

// normalizeNames trims each name and re-checks the invariants the persisted
// room must satisfy: at least two names, pairwise distinct under
// case-insensitive comparison. User-facing validation happens at the edge;
// this guards the store.
func normalizeNames(names []string) ([]string, error) {
	trimmed := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		folded := strings.ToLower(name)
		if _, ok := seen[folded]; ok {
			return nil, domain.ErrDuplicateName
		}
		seen[folded] = struct{}{}
		trimmed = append(trimmed, name)
	}
	if len(trimmed) < 2 {
		return nil, domain.ErrTooFewParticipants
	}
	return trimmed, nil
}
