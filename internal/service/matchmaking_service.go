package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vogiaan1904/codeclash/config"
	kafka "github.com/vogiaan1904/codeclash/internal/delivery/kafka"
	"github.com/vogiaan1904/codeclash/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/codeclash/internal/models"
	repo "github.com/vogiaan1904/codeclash/internal/repository/redis"
	"github.com/vogiaan1904/codeclash/pkg/logger"
	"github.com/vogiaan1904/codeclash/pkg/util"
)

// MatchFoundNotice is the system message appended to every freshly
// paired room. It is always the room's first message.
const MatchFoundNotice = "Match found!"

type MatchmakingService interface {
	Join(ctx context.Context, in JoinInput) (*JoinOutput, error)
}

type matchmakingService struct {
	qRepo        repo.QueueRepository
	roomRepo     repo.RoomRepository
	msgRepo      repo.MessageRepository
	questionRepo repo.QuestionRepository
	prod         producer.Producer
	cfg          config.MatchmakingConfig
	l            logger.Logger
}

func NewMatchmakingService(
	qRepo repo.QueueRepository,
	roomRepo repo.RoomRepository,
	msgRepo repo.MessageRepository,
	questionRepo repo.QuestionRepository,
	prod producer.Producer,
	cfg config.MatchmakingConfig,
	l logger.Logger,
) MatchmakingService {
	return &matchmakingService{
		qRepo:        qRepo,
		roomRepo:     roomRepo,
		msgRepo:      msgRepo,
		questionRepo: questionRepo,
		prod:         prod,
		cfg:          cfg,
		l:            l,
	}
}

func (s *matchmakingService) Join(ctx context.Context, in JoinInput) (*JoinOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()

	entry, err := s.qRepo.ClaimOrEnqueue(ctx, name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to claim or enqueue: %w", err)
	}

	if entry == nil {
		if s.prod != nil {
			if err := s.prod.PublishQueueJoined(ctx, kafka.QueueJoinedEvent{
				Name:       name,
				EnqueuedAt: now,
			}); err != nil {
				// Log error but don't fail the request
				s.l.Error(ctx, "Failed to publish queue joined event",
					"name", name,
					"error", err,
				)
			}
		}

		s.l.Info(ctx, "User waiting for a peer", "name", name)

		return &JoinOutput{Status: MatchStatusWaiting}, nil
	}

	room, err := s.createRoom(ctx, entry.Name, name, now)
	if err != nil {
		// Lose the race safely: put the claimed entry back with its
		// original score before surfacing the failure.
		if qErr := s.qRepo.Enqueue(ctx, entry); qErr != nil {
			s.l.Errorf(ctx, "service.matchmakingService.Join: failed to requeue %s: %v", entry.Name, qErr)
		}
		return nil, err
	}

	sysMsg := &models.Message{
		ID:        uuid.New().String(),
		RoomID:    room.RoomID,
		Sender:    models.SenderSystem,
		Content:   MatchFoundNotice,
		Type:      models.MessageTypeSystem,
		CreatedAt: time.Now(),
	}
	if err := s.msgRepo.Append(ctx, sysMsg); err != nil {
		return nil, fmt.Errorf("failed to append system message: %w", err)
	}

	if s.prod != nil {
		if err := s.prod.PublishMatchCreated(ctx, kafka.MatchCreatedEvent{
			RoomID:       room.RoomID,
			Participants: room.Participants,
			QuestionSlug: room.QuestionSlug,
			CreatedAt:    room.CreatedAt,
		}); err != nil {
			s.l.Error(ctx, "Failed to publish match created event",
				"room_id", room.RoomID,
				"error", err,
			)
		}
	}

	s.l.Info(ctx, "Match created",
		"room_id", room.RoomID,
		"participants", room.Participants,
		"question_slug", room.QuestionSlug,
	)

	return &JoinOutput{
		Status: MatchStatusPaired,
		RoomID: room.RoomID,
	}, nil
}

func (s *matchmakingService) createRoom(ctx context.Context, waitingName, joiningName string, createdAt time.Time) (*models.Room, error) {
	q, err := s.questionRepo.Random(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample question: %w", err)
	}

	var slug string
	if q != nil {
		slug = q.Slug
	}

	for attempt := 0; attempt < s.cfg.RoomIDMaxAttempts; attempt++ {
		room := &models.Room{
			RoomID:        util.RandomRoomID(s.cfg.RoomIDLength),
			Participants:  []string{waitingName, joiningName},
			QuestionSlug:  slug,
			EditorContent: "",
			CreatedAt:     createdAt,
		}

		created, err := s.roomRepo.Create(ctx, room)
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}
		if created {
			return room, nil
		}
	}

	return nil, ErrRoomIDExhausted
}
