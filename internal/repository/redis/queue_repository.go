package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vogiaan1904/codeclash/internal/models"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type QueueRepository interface {
	// ClaimOrEnqueue atomically either claims the oldest waiting entry
	// belonging to another user (removing it and any stale entry for
	// name) or parks name in the queue. A nil entry means name is now
	// waiting.
	ClaimOrEnqueue(ctx context.Context, name string, enqueuedAt time.Time) (*models.WaitingEntry, error)
	Enqueue(ctx context.Context, entry *models.WaitingEntry) error
	Remove(ctx context.Context, name string) error
	Length(ctx context.Context) (int64, error)
	IsWaiting(ctx context.Context, name string) (bool, error)
}

type redisQueueRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisQueueRepository(cli *redis.Client, l logger.Logger) QueueRepository {
	return &redisQueueRepository{
		cli: cli,
		l:   l,
	}
}

// claimScript is the single atomic step the pairing protocol relies on:
// scan the head of the queue for a member other than the joiner, remove
// it (and the joiner's own stale entry, if any) in the same script, or
// fall through to enqueueing the joiner. ZADD NX keeps the original
// score when the joiner was already waiting, so a re-join never loses
// queue position.
var claimScript = redis.NewScript(`
	local key = KEYS[1]
	local name = ARGV[1]
	local score = ARGV[2]

	local head = redis.call('ZRANGE', key, 0, 1, 'WITHSCORES')
	for i = 1, #head, 2 do
		if head[i] ~= name then
			redis.call('ZREM', key, head[i], name)
			return {head[i], head[i + 1]}
		end
	end

	redis.call('ZADD', key, 'NX', score, name)
	return false
`)

func (r *redisQueueRepository) ClaimOrEnqueue(ctx context.Context, name string, enqueuedAt time.Time) (*models.WaitingEntry, error) {
	qKey := r.queueKey()
	score := strconv.FormatFloat(float64(enqueuedAt.UnixMicro()), 'f', -1, 64)

	res, err := claimScript.Run(ctx, r.cli, []string{qKey}, name, score).Result()
	if err != nil {
		if err == redis.Nil {
			// Script returned false: name is enqueued, nobody claimed.
			r.l.Debug(ctx, "Enqueued waiting entry", "name", name)
			return nil, nil
		}

		r.l.Errorf(ctx, "redisQueueRepository.ClaimOrEnqueue: %v", err)
		return nil, err
	}

	pair, ok := res.([]interface{})
	if !ok || len(pair) != 2 {
		r.l.Errorf(ctx, "redisQueueRepository.ClaimOrEnqueue: unexpected script reply %v", res)
		return nil, redis.Nil
	}

	claimedName, _ := pair[0].(string)
	scoreStr, _ := pair[1].(string)

	claimedScore, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		r.l.Errorf(ctx, "redisQueueRepository.ClaimOrEnqueue: bad score %q: %v", scoreStr, err)
		return nil, err
	}

	entry := &models.WaitingEntry{
		Name:       claimedName,
		Status:     models.WaitingStatusWaiting,
		EnqueuedAt: time.UnixMicro(int64(claimedScore)),
	}

	r.l.Debug(ctx, "Claimed waiting entry", "claimed", claimedName, "by", name)

	return entry, nil
}

func (r *redisQueueRepository) Enqueue(ctx context.Context, entry *models.WaitingEntry) error {
	qKey := r.queueKey()

	// NX so a re-enqueued entry keeps its original FIFO position.
	if err := r.cli.ZAddNX(ctx, qKey, redis.Z{
		Score:  float64(entry.EnqueuedAt.UnixMicro()),
		Member: entry.Name,
	}).Err(); err != nil {
		r.l.Errorf(ctx, "redisQueueRepository.Enqueue: %v", err)
		return err
	}

	return nil
}

func (r *redisQueueRepository) Remove(ctx context.Context, name string) error {
	qKey := r.queueKey()

	removed, err := r.cli.ZRem(ctx, qKey, name).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisQueueRepository.Remove: %v", err)
		return err
	}

	if removed > 0 {
		r.l.Debug(ctx, "Removed from queue", "name", name)
	}

	return nil
}

func (r *redisQueueRepository) Length(ctx context.Context) (int64, error) {
	count, err := r.cli.ZCard(ctx, r.queueKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisQueueRepository.Length: %v", err)
		return 0, err
	}

	return count, nil
}

func (r *redisQueueRepository) IsWaiting(ctx context.Context, name string) (bool, error) {
	_, err := r.cli.ZScore(ctx, r.queueKey(), name).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		r.l.Errorf(ctx, "redisQueueRepository.IsWaiting: %v", err)
		return false, err
	}

	return true, nil
}

func (r *redisQueueRepository) queueKey() string {
	return "codeclash:matchmaking:waiting"
}
