package storage

import (
	"context"

	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
)

type CreateQuestionInput struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int64  `json:"category" validate:"required,gt=0"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
	GetCategory(ctx context.Context, id int64) (trivia.Category, error)
}

type QuestionStore interface {
	ListQuestions(ctx context.Context) ([]trivia.Question, error)
	GetQuestion(ctx context.Context, id int64) (trivia.Question, error)
	CreateQuestion(ctx context.Context, in CreateQuestionInput) (trivia.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error)

	// QuizCandidates returns questions not in exclude. categoryID 0 means any category.
	QuizCandidates(ctx context.Context, categoryID int64, exclude []int64) ([]trivia.Question, error)
}

type Store interface {
	CategoryStore
	QuestionStore
}
