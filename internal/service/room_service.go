package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vogiaan1904/codeclash/config"
	"github.com/vogiaan1904/codeclash/internal/models"
	repo "github.com/vogiaan1904/codeclash/internal/repository/redis"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type RoomService interface {
	GetRoom(ctx context.Context, roomID string) (*RoomOutput, error)
	SendMessage(ctx context.Context, roomID string, in SendMessageInput) error
	ListMessages(ctx context.Context, roomID string, limit int64) ([]models.Message, error)
	UpdateEditor(ctx context.Context, roomID string, in UpdateEditorInput) error
}

type roomService struct {
	roomRepo     repo.RoomRepository
	msgRepo      repo.MessageRepository
	questionRepo repo.QuestionRepository
	cfg          config.MatchmakingConfig
	l            logger.Logger
}

func NewRoomService(
	roomRepo repo.RoomRepository,
	msgRepo repo.MessageRepository,
	questionRepo repo.QuestionRepository,
	cfg config.MatchmakingConfig,
	l logger.Logger,
) RoomService {
	return &roomService{
		roomRepo:     roomRepo,
		msgRepo:      msgRepo,
		questionRepo: questionRepo,
		cfg:          cfg,
		l:            l,
	}
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*RoomOutput, error) {
	room, err := s.roomRepo.Get(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	out := &RoomOutput{Room: *room}

	// Read-time join against the catalog; the room only stores the slug.
	if room.QuestionSlug != "" {
		q, err := s.questionRepo.BySlug(ctx, room.QuestionSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve question: %w", err)
		}
		out.Question = q
	}

	return out, nil
}

func (s *roomService) SendMessage(ctx context.Context, roomID string, in SendMessageInput) error {
	exists, err := s.roomRepo.Exists(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}
	if !exists {
		return ErrRoomNotFound
	}

	msg := &models.Message{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Sender:    in.Sender,
		Content:   in.Content,
		Type:      models.MessageTypeChat,
		CreatedAt: time.Now(),
	}

	if err := s.msgRepo.Append(ctx, msg); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return nil
}

func (s *roomService) ListMessages(ctx context.Context, roomID string, limit int64) ([]models.Message, error) {
	exists, err := s.roomRepo.Exists(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room: %w", err)
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	if limit <= 0 {
		limit = s.cfg.DefaultMessageLimit
	}

	msgs, err := s.msgRepo.List(ctx, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return msgs, nil
}

func (s *roomService) UpdateEditor(ctx context.Context, roomID string, in UpdateEditorInput) error {
	ok, err := s.roomRepo.SetEditorContent(ctx, roomID, in.Content)
	if err != nil {
		return fmt.Errorf("failed to update editor content: %w", err)
	}
	if !ok {
		return ErrRoomNotFound
	}

	s.l.Debug(ctx, "Editor content replaced",
		"room_id", roomID,
		"bytes", len(in.Content),
	)

	return nil
}
