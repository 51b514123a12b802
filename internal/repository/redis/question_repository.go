package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/vogiaan1904/codeclash/internal/models"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type QuestionRepository interface {
	Save(ctx context.Context, q *models.Question) error
	// BySlug returns nil without error when the slug is unknown.
	BySlug(ctx context.Context, slug string) (*models.Question, error)
	// List returns the catalog ordered by slug.
	List(ctx context.Context) ([]models.Question, error)
	// Random samples one question uniformly, nil when the catalog is
	// empty.
	Random(ctx context.Context) (*models.Question, error)
	Count(ctx context.Context) (int64, error)
}

type redisQuestionRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisQuestionRepository(cli *redis.Client, l logger.Logger) QuestionRepository {
	return &redisQuestionRepository{
		cli: cli,
		l:   l,
	}
}

func (r *redisQuestionRepository) Save(ctx context.Context, q *models.Question) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal question: %w", err)
	}

	if err := r.cli.HSet(ctx, r.catalogKey(), q.Slug, data).Err(); err != nil {
		r.l.Errorf(ctx, "redisQuestionRepository.Save: %v", err)
		return err
	}

	return nil
}

func (r *redisQuestionRepository) BySlug(ctx context.Context, slug string) (*models.Question, error) {
	data, err := r.cli.HGet(ctx, r.catalogKey(), slug).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		r.l.Errorf(ctx, "redisQuestionRepository.BySlug: %v", err)
		return nil, err
	}

	var q models.Question
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		r.l.Errorf(ctx, "redisQuestionRepository.BySlug: %v", err)
		return nil, err
	}

	return &q, nil
}

func (r *redisQuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	fields, err := r.cli.HGetAll(ctx, r.catalogKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisQuestionRepository.List: %v", err)
		return nil, err
	}

	questions := make([]models.Question, 0, len(fields))
	for _, data := range fields {
		var q models.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			r.l.Errorf(ctx, "redisQuestionRepository.List: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Slug < questions[j].Slug
	})

	return questions, nil
}

func (r *redisQuestionRepository) Random(ctx context.Context) (*models.Question, error) {
	slugs, err := r.cli.HRandField(ctx, r.catalogKey(), 1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisQuestionRepository.Random: %v", err)
		return nil, err
	}
	if len(slugs) == 0 {
		return nil, nil
	}

	return r.BySlug(ctx, slugs[0])
}

func (r *redisQuestionRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.cli.HLen(ctx, r.catalogKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisQuestionRepository.Count: %v", err)
		return 0, err
	}

	return count, nil
}

func (r *redisQuestionRepository) catalogKey() string {
	return "codeclash:questions"
}
