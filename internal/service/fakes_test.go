package service

import (
	"context"
	"sort"
	"sync"
	"time"

	kafka "github.com/vogiaan1904/codeclash/internal/delivery/kafka"
	"github.com/vogiaan1904/codeclash/internal/models"
)

// In-memory doubles for the redis repositories. They mirror the store's
// contract: the claim step is atomic (single lock section), rooms are
// create-once, message order is append order.

type fakeQueueRepo struct {
	mu      sync.Mutex
	entries []models.WaitingEntry
}

func (f *fakeQueueRepo) ClaimOrEnqueue(ctx context.Context, name string, enqueuedAt time.Time) (*models.WaitingEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, e := range f.entries {
		if e.Name != name {
			claimed := e
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			f.removeLocked(name)
			return &claimed, nil
		}
	}

	f.addLocked(models.WaitingEntry{
		Name:       name,
		Status:     models.WaitingStatusWaiting,
		EnqueuedAt: enqueuedAt,
	})

	return nil, nil
}

func (f *fakeQueueRepo) Enqueue(ctx context.Context, entry *models.WaitingEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addLocked(*entry)
	return nil
}

func (f *fakeQueueRepo) Remove(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removeLocked(name)
	return nil
}

func (f *fakeQueueRepo) Length(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.entries)), nil
}

func (f *fakeQueueRepo) IsWaiting(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQueueRepo) addLocked(entry models.WaitingEntry) {
	for _, e := range f.entries {
		if e.Name == entry.Name {
			return
		}
	}
	f.entries = append(f.entries, entry)
	sort.Slice(f.entries, func(i, j int) bool {
		if !f.entries[i].EnqueuedAt.Equal(f.entries[j].EnqueuedAt) {
			return f.entries[i].EnqueuedAt.Before(f.entries[j].EnqueuedAt)
		}
		return f.entries[i].Name < f.entries[j].Name
	})
}

func (f *fakeQueueRepo) removeLocked(name string) {
	for i, e := range f.entries {
		if e.Name == name {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

type fakeRoomRepo struct {
	mu         sync.Mutex
	rooms      map[string]models.Room
	collisions int // force this many creation collisions before succeeding
	attempts   int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]models.Room{}}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts++
	if f.collisions > 0 {
		f.collisions--
		return false, nil
	}
	if _, ok := f.rooms[room.RoomID]; ok {
		return false, nil
	}

	f.rooms[room.RoomID] = *room
	return true, nil
}

func (f *fakeRoomRepo) Get(ctx context.Context, roomID string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (f *fakeRoomRepo) SetEditorContent(ctx context.Context, roomID, content string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return false, nil
	}
	room.EditorContent = content
	f.rooms[roomID] = room
	return true, nil
}

func (f *fakeRoomRepo) Exists(ctx context.Context, roomID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.rooms[roomID]
	return ok, nil
}

type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs map[string][]models.Message
	seq  map[string]int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		msgs: map[string][]models.Message{},
		seq:  map[string]int64{},
	}
}

func (f *fakeMessageRepo) Append(ctx context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq[msg.RoomID]++
	msg.Seq = f.seq[msg.RoomID]
	f.msgs[msg.RoomID] = append(f.msgs[msg.RoomID], *msg)
	return nil
}

func (f *fakeMessageRepo) List(ctx context.Context, roomID string, limit int64) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := f.msgs[roomID]
	if limit > 0 && int64(len(msgs)) > limit {
		msgs = msgs[:limit]
	}

	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]models.Question
}

func newFakeQuestionRepo(qs ...models.Question) *fakeQuestionRepo {
	f := &fakeQuestionRepo{questions: map[string]models.Question{}}
	for _, q := range qs {
		f.questions[q.Slug] = q
	}
	return f
}

func (f *fakeQuestionRepo) Save(ctx context.Context, q *models.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.questions[q.Slug] = *q
	return nil
}

func (f *fakeQuestionRepo) BySlug(ctx context.Context, slug string) (*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.questions[slug]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (f *fakeQuestionRepo) List(ctx context.Context) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Question, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (f *fakeQuestionRepo) Random(ctx context.Context) (*models.Question, error) {
	// Deterministic for tests: lowest slug wins.
	qs, _ := f.List(ctx)
	if len(qs) == 0 {
		return nil, nil
	}
	return &qs[0], nil
}

func (f *fakeQuestionRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.questions)), nil
}

type fakeProducer struct {
	mu      sync.Mutex
	joined  []kafka.QueueJoinedEvent
	matches []kafka.MatchCreatedEvent
}

func (f *fakeProducer) PublishQueueJoined(ctx context.Context, event kafka.QueueJoinedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.joined = append(f.joined, event)
	return nil
}

func (f *fakeProducer) PublishMatchCreated(ctx context.Context, event kafka.MatchCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.matches = append(f.matches, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }
