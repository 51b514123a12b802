package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/codeclash/config"
	"github.com/vogiaan1904/codeclash/internal/models"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type roomFixture struct {
	rooms     *fakeRoomRepo
	messages  *fakeMessageRepo
	questions *fakeQuestionRepo
	svc       RoomService
}

func newRoomFixture(t *testing.T, questions ...models.Question) *roomFixture {
	t.Helper()

	f := &roomFixture{
		rooms:     newFakeRoomRepo(),
		messages:  newFakeMessageRepo(),
		questions: newFakeQuestionRepo(questions...),
	}

	cfg := config.MatchmakingConfig{
		RoomIDLength:        6,
		RoomIDMaxAttempts:   5,
		DefaultMessageLimit: 50,
	}

	f.svc = NewRoomService(f.rooms, f.messages, f.questions, cfg, logger.InitializeTestZapLogger())

	return f
}

func (f *roomFixture) seedRoom(t *testing.T, roomID, slug string) {
	t.Helper()

	created, err := f.rooms.Create(context.Background(), &models.Room{
		RoomID:       roomID,
		Participants: []string{"Alice", "Bob"},
		QuestionSlug: slug,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.True(t, created)
}

func TestGetRoomNotFound(t *testing.T) {
	f := newRoomFixture(t)

	_, err := f.svc.GetRoom(context.Background(), "ZZZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRoomResolvesQuestion(t *testing.T) {
	q := models.Question{Title: "Two Sum", Slug: "two-sum", Difficulty: models.DifficultyEasy}
	f := newRoomFixture(t, q)
	f.seedRoom(t, "AB12CD", "two-sum")

	out, err := f.svc.GetRoom(context.Background(), "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, out.Participants)
	require.NotNil(t, out.Question)
	assert.Equal(t, "Two Sum", out.Question.Title)
}

func TestGetRoomWithoutQuestion(t *testing.T) {
	f := newRoomFixture(t)
	f.seedRoom(t, "AB12CD", "")

	out, err := f.svc.GetRoom(context.Background(), "AB12CD")
	require.NoError(t, err)
	assert.Nil(t, out.Question)
}

func TestSendMessageRoomNotFound(t *testing.T) {
	f := newRoomFixture(t)

	err := f.svc.SendMessage(context.Background(), "ZZZZZZ", SendMessageInput{
		Sender:  "Alice",
		Content: "hello?",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestListMessagesOrdering(t *testing.T) {
	f := newRoomFixture(t)
	f.seedRoom(t, "AB12CD", "")
	ctx := context.Background()

	// System notice first, then chat, all sharing one clock tick: order
	// must come from the sequence counter.
	now := time.Now()
	require.NoError(t, f.messages.Append(ctx, &models.Message{
		ID: uuid.New().String(), RoomID: "AB12CD",
		Sender: models.SenderSystem, Content: MatchFoundNotice,
		Type: models.MessageTypeSystem, CreatedAt: now,
	}))
	for _, content := range []string{"hi", "hey", "ready?"} {
		require.NoError(t, f.svc.SendMessage(ctx, "AB12CD", SendMessageInput{
			Sender:  "Alice",
			Content: content,
		}))
	}

	msgs, err := f.svc.ListMessages(ctx, "AB12CD", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, models.MessageTypeSystem, msgs[0].Type)
	assert.Equal(t, MatchFoundNotice, msgs[0].Content)

	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].Seq, msgs[i-1].Seq)
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
	}
}

func TestListMessagesRespectsLimit(t *testing.T) {
	f := newRoomFixture(t)
	f.seedRoom(t, "AB12CD", "")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.SendMessage(ctx, "AB12CD", SendMessageInput{
			Sender:  "Bob",
			Content: "ping",
		}))
	}

	msgs, err := f.svc.ListMessages(ctx, "AB12CD", 3)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestListMessagesRoomNotFound(t *testing.T) {
	f := newRoomFixture(t)

	_, err := f.svc.ListMessages(context.Background(), "ZZZZZZ", 0)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUpdateEditorLastWriteWins(t *testing.T) {
	f := newRoomFixture(t)
	f.seedRoom(t, "AB12CD", "")
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateEditor(ctx, "AB12CD", UpdateEditorInput{Content: "def solve():"}))
	require.NoError(t, f.svc.UpdateEditor(ctx, "AB12CD", UpdateEditorInput{Content: "func solve() {}"}))

	room, err := f.rooms.Get(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "func solve() {}", room.EditorContent)
}

func TestUpdateEditorRoomNotFound(t *testing.T) {
	f := newRoomFixture(t)

	err := f.svc.UpdateEditor(context.Background(), "ZZZZZZ", UpdateEditorInput{Content: "x"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
