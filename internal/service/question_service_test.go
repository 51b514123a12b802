package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/codeclash/pkg/logger"
)

func TestSeedIsIdempotent(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, logger.InitializeTestZapLogger())
	ctx := context.Background()

	out, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, out.Seeded)
	assert.Equal(t, len(sampleQuestions), out.Count)

	out, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, out.Seeded)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sampleQuestions)), count)
}

func TestListOrderedBySlug(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, logger.InitializeTestZapLogger())
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	questions, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, questions, len(sampleQuestions))

	for i := 1; i < len(questions); i++ {
		assert.Less(t, questions[i-1].Slug, questions[i].Slug)
	}
}
