package service

import (
	"context"

	"github.com/ArtemMoroz51/trivia-api/internal/storage"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
)

type QuestionPage struct {
	Questions  []trivia.Question
	Total      int
	Categories []trivia.Category
}

type CategoryQuestions struct {
	Category  trivia.Category
	Questions []trivia.Question
}

type QuizRequest struct {
	CategoryID        int64
	PreviousQuestions []int64
}

type TriviaService interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)

	// ListQuestions returns one page of all questions plus every category.
	ListQuestions(ctx context.Context, page int) (QuestionPage, error)
	CreateQuestion(ctx context.Context, in storage.CreateQuestionInput, page int) (trivia.Question, QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int64, page int) (QuestionPage, error)

	SearchQuestions(ctx context.Context, term *string) ([]trivia.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error)

	// NextQuizQuestion returns nil when the round has run out of questions.
	NextQuizQuestion(ctx context.Context, req QuizRequest) (*trivia.Question, error)
}
