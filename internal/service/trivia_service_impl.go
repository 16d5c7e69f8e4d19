package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/ArtemMoroz51/trivia-api/internal/cache"
	"github.com/ArtemMoroz51/trivia-api/internal/storage"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type triviaService struct {
	store    storage.Store
	log      *zap.Logger
	cats     cache.CategoryCache
	validate *validator.Validate
	intn     func(n int) int
}

type Option func(*triviaService)

// WithCategoryCache puts c in front of the category table.
func WithCategoryCache(c cache.CategoryCache) Option {
	return func(s *triviaService) { s.cats = c }
}

// WithRand replaces the source used to pick quiz questions.
func WithRand(intn func(n int) int) Option {
	return func(s *triviaService) { s.intn = intn }
}

func NewTriviaService(store storage.Store, log *zap.Logger, opts ...Option) TriviaService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &triviaService{
		store:    store,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		intn:     rand.Intn,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *triviaService) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	if s.cats != nil {
		cats, ok, err := s.cats.Get(ctx)
		if err != nil {
			s.log.Warn("category cache read failed", zap.Error(err))
		} else if ok {
			return cats, nil
		}
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cats != nil {
		if err := s.cats.Set(ctx, cats); err != nil {
			s.log.Warn("category cache write failed", zap.Error(err))
		}
	}
	return cats, nil
}

func (s *triviaService) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	current := trivia.Paginate(page, all)
	if len(current) == 0 && page > 1 {
		return QuestionPage{}, fmt.Errorf("page %d: %w", page, trivia.ErrNotFound)
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{Questions: current, Total: len(all), Categories: cats}, nil
}

func (s *triviaService) CreateQuestion(ctx context.Context, in storage.CreateQuestionInput, page int) (trivia.Question, QuestionPage, error) {
	// blank text is rejected, but stored text is kept as submitted
	check := in
	check.Question = strings.TrimSpace(in.Question)
	check.Answer = strings.TrimSpace(in.Answer)
	if err := s.validate.Struct(check); err != nil {
		return trivia.Question{}, QuestionPage{}, fmt.Errorf("%w: %s", trivia.ErrInvalidInput, err.Error())
	}

	if _, err := s.store.GetCategory(ctx, in.Category); err != nil {
		if errors.Is(err, trivia.ErrNotFound) {
			return trivia.Question{}, QuestionPage{}, fmt.Errorf("%w: unknown category %d", trivia.ErrInvalidInput, in.Category)
		}
		return trivia.Question{}, QuestionPage{}, err
	}

	q, err := s.store.CreateQuestion(ctx, in)
	if err != nil {
		return trivia.Question{}, QuestionPage{}, err
	}

	return q, s.pageAfterWrite(ctx, page, zap.Int64("created", q.ID)), nil
}

func (s *triviaService) DeleteQuestion(ctx context.Context, id int64, page int) (QuestionPage, error) {
	if id <= 0 {
		return QuestionPage{}, fmt.Errorf("question %d: %w", id, trivia.ErrNotFound)
	}

	if _, err := s.store.GetQuestion(ctx, id); err != nil {
		return QuestionPage{}, err
	}
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return QuestionPage{}, err
	}

	return s.pageAfterWrite(ctx, page, zap.Int64("deleted", id)), nil
}

func (s *triviaService) SearchQuestions(ctx context.Context, term *string) ([]trivia.Question, error) {
	if term == nil {
		return nil, fmt.Errorf("%w: searchTerm is required", trivia.ErrBadRequest)
	}
	return s.store.SearchQuestions(ctx, *term)
}

func (s *triviaService) QuestionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	cat, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, err
	}

	qs, err := s.store.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, err
	}
	return CategoryQuestions{Category: cat, Questions: qs}, nil
}

func (s *triviaService) NextQuizQuestion(ctx context.Context, req QuizRequest) (*trivia.Question, error) {
	if req.CategoryID < 0 {
		return nil, fmt.Errorf("%w: negative category id", trivia.ErrBadRequest)
	}
	if req.CategoryID != 0 {
		if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	candidates, err := s.store.QuizCandidates(ctx, req.CategoryID, req.PreviousQuestions)
	if err != nil {
		return nil, err
	}

	q, ok := trivia.PickUnseen(candidates, req.PreviousQuestions, s.intn)
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// pageAfterWrite lists the page shown after a committed write. The write has
// already happened, so a failed listing yields an empty page instead of an error.
func (s *triviaService) pageAfterWrite(ctx context.Context, page int, written zap.Field) QuestionPage {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		s.log.Warn("list questions after write failed", written, zap.Error(err))
		return QuestionPage{Questions: []trivia.Question{}}
	}
	return QuestionPage{Questions: trivia.Paginate(page, all), Total: len(all)}
}
