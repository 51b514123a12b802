package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vogiaan1904/codeclash/internal/models"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type MessageRepository interface {
	// Append assigns the message its per-room sequence number and
	// stores it. Messages are immutable once appended.
	Append(ctx context.Context, msg *models.Message) error
	// List returns up to limit messages in append order, which equals
	// (created_at, seq) ascending. limit <= 0 means no limit.
	List(ctx context.Context, roomID string, limit int64) ([]models.Message, error)
}

type redisMessageRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisMessageRepository(cli *redis.Client, l logger.Logger) MessageRepository {
	return &redisMessageRepository{
		cli: cli,
		l:   l,
	}
}

func (r *redisMessageRepository) Append(ctx context.Context, msg *models.Message) error {
	// INCR gives the tie-break for messages created within the same
	// clock tick; list append order then matches (created_at, seq).
	seq, err := r.cli.Incr(ctx, r.seqKey(msg.RoomID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisMessageRepository.Append: %v", err)
		return err
	}
	msg.Seq = seq

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := r.cli.RPush(ctx, r.messagesKey(msg.RoomID), data).Err(); err != nil {
		r.l.Errorf(ctx, "redisMessageRepository.Append: %v", err)
		return err
	}

	r.l.Debug(ctx, "Message appended",
		"room_id", msg.RoomID,
		"sender", msg.Sender,
		"type", msg.Type,
		"seq", seq,
	)

	return nil
}

func (r *redisMessageRepository) List(ctx context.Context, roomID string, limit int64) ([]models.Message, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1
	}

	raw, err := r.cli.LRange(ctx, r.messagesKey(roomID), 0, stop).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisMessageRepository.List: %v", err)
		return nil, err
	}

	msgs := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			r.l.Errorf(ctx, "redisMessageRepository.List: %v", err)
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

func (r *redisMessageRepository) messagesKey(roomID string) string {
	return fmt.Sprintf("codeclash:room:%s:messages", roomID)
}

func (r *redisMessageRepository) seqKey(roomID string) string {
	return fmt.Sprintf("codeclash:room:%s:msgseq", roomID)
}
