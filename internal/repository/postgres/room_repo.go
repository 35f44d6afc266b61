package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"secretsanta/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{DB: db}
}

// Create inserts the room and all of its participants in one transaction.
// Room codes, creator keys, and participant keys each sit behind their own
// unique index; any violation rolls the whole insert back and surfaces as
// domain.ErrDuplicateToken so the service can regenerate tokens and retry.
func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	const insertRoom = `
		INSERT INTO rooms (id, code, creator_key, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, insertRoom, room.ID, room.Code, room.CreatorKey, room.CreatedAt); err != nil {
		return mapUniqueViolation(err)
	}

	const insertParticipant = `
		INSERT INTO participants (id, room_id, position, name, secret_key, assigned_to, gift_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, p := range room.Participants {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.RoomID = room.ID
		if _, err := tx.ExecContext(ctx, insertParticipant, p.ID, room.ID, i, p.Name, p.Key, p.AssignedTo, p.GiftNumber); err != nil {
			return mapUniqueViolation(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit room: %w", err)
	}
	return nil
}

func (r *roomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	return r.getRoom(ctx, `SELECT id, code, creator_key, created_at FROM rooms WHERE code = $1`, code)
}

func (r *roomRepository) GetByCreatorKey(ctx context.Context, key string) (*domain.Room, error) {
	return r.getRoom(ctx, `SELECT id, code, creator_key, created_at FROM rooms WHERE creator_key = $1`, key)
}

// GetParticipantByKey resolves a participant key to its participant row plus
// the owning room with the full participant list loaded. The service layer
// decides how much of that context leaves the process.
func (r *roomRepository) GetParticipantByKey(ctx context.Context, key string) (*domain.Room, *domain.Participant, error) {
	const query = `
		SELECT id, room_id, name, secret_key, assigned_to, gift_number
		FROM participants
		WHERE secret_key = $1
	`
	p := &domain.Participant{}
	err := r.DB.QueryRowContext(ctx, query, key).
		Scan(&p.ID, &p.RoomID, &p.Name, &p.Key, &p.AssignedTo, &p.GiftNumber)
	if err != nil {
		return nil, nil, err
	}
	room, err := r.getRoom(ctx, `SELECT id, code, creator_key, created_at FROM rooms WHERE id = $1`, p.RoomID)
	if err != nil {
		return nil, nil, err
	}
	return room, p, nil
}

func (r *roomRepository) getRoom(ctx context.Context, query, arg string) (*domain.Room, error) {
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&room.ID, &room.Code, &room.CreatorKey, &room.CreatedAt)
	if err != nil {
		return nil, err
	}
	participants, err := r.listParticipants(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	room.Participants = participants
	return room, nil
}

func (r *roomRepository) listParticipants(ctx context.Context, roomID string) ([]*domain.Participant, error) {
	const query = `
		SELECT id, room_id, name, secret_key, assigned_to, gift_number
		FROM participants
		WHERE room_id = $1
		ORDER BY position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Name, &p.Key, &p.AssignedTo, &p.GiftNumber); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateToken
	}
	return err
}
