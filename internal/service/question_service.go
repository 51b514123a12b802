package service

import (
	"context"
	"fmt"

	"github.com/vogiaan1904/codeclash/internal/models"
	repo "github.com/vogiaan1904/codeclash/internal/repository/redis"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type QuestionService interface {
	List(ctx context.Context) ([]models.Question, error)
	// Seed is idempotent: a non-empty catalog is left untouched.
	Seed(ctx context.Context) (*SeedOutput, error)
}

type questionService struct {
	questionRepo repo.QuestionRepository
	l            logger.Logger
}

func NewQuestionService(questionRepo repo.QuestionRepository, l logger.Logger) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		l:            l,
	}
}

var sampleQuestions = []models.Question{
	{
		Title:      "Two Sum",
		Slug:       "two-sum",
		Difficulty: models.DifficultyEasy,
		Tags:       []string{"array", "hashmap"},
		Statement: "Given an array of integers nums and an integer target, return indices of the" +
			" two numbers such that they add up to target.",
		Examples: []models.Example{
			{Input: "nums=[2,7,11,15], target=9", Output: "[0,1]"},
		},
	},
	{
		Title:      "Valid Parentheses",
		Slug:       "valid-parentheses",
		Difficulty: models.DifficultyEasy,
		Tags:       []string{"stack", "string"},
		Statement: "Given a string s containing only the characters '()[]{}', determine if the" +
			" input string is valid.",
		Examples: []models.Example{
			{Input: "s=()[]{}", Output: "true"},
		},
	},
	{
		Title:      "Longest Substring Without Repeating Characters",
		Slug:       "longest-substring",
		Difficulty: models.DifficultyMedium,
		Tags:       []string{"hashmap", "sliding-window"},
		Statement:  "Given a string s, find the length of the longest substring without repeating characters.",
		Examples: []models.Example{
			{Input: "abcabcbb", Output: "3"},
		},
	},
}

func (s *questionService) List(ctx context.Context) ([]models.Question, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, nil
}

func (s *questionService) Seed(ctx context.Context) (*SeedOutput, error) {
	count, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	if count > 0 {
		return &SeedOutput{Seeded: false, Message: "Questions already exist"}, nil
	}

	for i := range sampleQuestions {
		if err := s.questionRepo.Save(ctx, &sampleQuestions[i]); err != nil {
			return nil, fmt.Errorf("failed to seed question %s: %w", sampleQuestions[i].Slug, err)
		}
	}

	s.l.Info(ctx, "Question catalog seeded", "count", len(sampleQuestions))

	return &SeedOutput{Seeded: true, Count: len(sampleQuestions)}, nil
}
