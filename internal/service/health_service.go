package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	repo "github.com/vogiaan1904/codeclash/internal/repository/redis"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type HealthService interface {
	Check(ctx context.Context) *HealthOutput
}

type healthService struct {
	cli          *redis.Client
	questionRepo repo.QuestionRepository
	qRepo        repo.QueueRepository
	l            logger.Logger
}

func NewHealthService(
	cli *redis.Client,
	questionRepo repo.QuestionRepository,
	qRepo repo.QueueRepository,
	l logger.Logger,
) HealthService {
	return &healthService{
		cli:          cli,
		questionRepo: questionRepo,
		qRepo:        qRepo,
		l:            l,
	}
}

// Check never fails the request: an unreachable store is reported in
// the payload instead.
func (s *healthService) Check(ctx context.Context) *HealthOutput {
	out := &HealthOutput{
		Status: "running",
		Store:  "unavailable",
	}

	if err := s.cli.Ping(ctx).Err(); err != nil {
		s.l.Warnf(ctx, "service.healthService.Check: %v", err)
		return out
	}
	out.Store = "connected"

	collections := map[string]int64{}
	if n, err := s.questionRepo.Count(ctx); err == nil {
		collections["question"] = n
	}
	if n, err := s.qRepo.Length(ctx); err == nil {
		collections["waiting"] = n
	}
	out.Collections = collections

	return out
}
