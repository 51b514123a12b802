package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vogiaan1904/codeclash/internal/models"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type RoomRepository interface {
	// Create persists the room under its id. The second return value is
	// false when the id is already taken; callers retry with a fresh id.
	Create(ctx context.Context, room *models.Room) (bool, error)
	// Get returns nil without error when no room has the given id.
	Get(ctx context.Context, roomID string) (*models.Room, error)
	// SetEditorContent replaces the editor blob wholesale
	// (last-write-wins). False when the room does not exist.
	SetEditorContent(ctx context.Context, roomID, content string) (bool, error)
	Exists(ctx context.Context, roomID string) (bool, error)
}

type redisRoomRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisRoomRepository(cli *redis.Client, l logger.Logger) RoomRepository {
	return &redisRoomRepository{
		cli: cli,
		l:   l,
	}
}

func (r *redisRoomRepository) Create(ctx context.Context, room *models.Room) (bool, error) {
	key := r.roomKey(room.RoomID)

	// HSETNX on the id field is the uniqueness guard: rooms are never
	// deleted, so a taken field means a live collision.
	created, err := r.cli.HSetNX(ctx, key, "room_id", room.RoomID).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.Create: %v", err)
		return false, err
	}
	if !created {
		r.l.Warn(ctx, "Room id collision", "room_id", room.RoomID)
		return false, nil
	}

	participants, err := json.Marshal(room.Participants)
	if err != nil {
		return false, fmt.Errorf("failed to marshal participants: %w", err)
	}

	if err := r.cli.HSet(ctx, key,
		"participants", participants,
		"question_slug", room.QuestionSlug,
		"editor_content", room.EditorContent,
		"created_at", room.CreatedAt.Format(time.RFC3339Nano),
	).Err(); err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.Create: %v", err)
		return false, err
	}

	r.l.Debug(ctx, "Room created",
		"room_id", room.RoomID,
		"participants", room.Participants,
	)

	return true, nil
}

func (r *redisRoomRepository) Get(ctx context.Context, roomID string) (*models.Room, error) {
	fields, err := r.cli.HGetAll(ctx, r.roomKey(roomID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.Get: %v", err)
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	room := &models.Room{
		RoomID:        fields["room_id"],
		QuestionSlug:  fields["question_slug"],
		EditorContent: fields["editor_content"],
	}

	if raw := fields["participants"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &room.Participants); err != nil {
			r.l.Errorf(ctx, "redisRoomRepository.Get: %v", err)
			return nil, err
		}
	}

	if raw := fields["created_at"]; raw != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			r.l.Errorf(ctx, "redisRoomRepository.Get: %v", err)
			return nil, err
		}
		room.CreatedAt = createdAt
	}

	return room, nil
}

func (r *redisRoomRepository) SetEditorContent(ctx context.Context, roomID, content string) (bool, error) {
	key := r.roomKey(roomID)

	// Rooms are never deleted, so exists-then-set cannot race with a
	// removal. The single-field HSET is the last-write-wins semantics.
	exists, err := r.cli.Exists(ctx, key).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.SetEditorContent: %v", err)
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	if err := r.cli.HSet(ctx, key, "editor_content", content).Err(); err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.SetEditorContent: %v", err)
		return false, err
	}

	return true, nil
}

func (r *redisRoomRepository) Exists(ctx context.Context, roomID string) (bool, error) {
	exists, err := r.cli.Exists(ctx, r.roomKey(roomID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisRoomRepository.Exists: %v", err)
		return false, err
	}

	return exists > 0, nil
}

func (r *redisRoomRepository) roomKey(roomID string) string {
	return fmt.Sprintf("codeclash:room:%s", roomID)
}
