package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE codes for rejected writes.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	var rows []categoryRow
	if err := s.db.WithContext(ctx).Order("type ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]trivia.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCategory())
	}
	return out, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int64) (trivia.Category, error) {
	var row categoryRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return trivia.Category{}, translateErr(fmt.Sprintf("category %d", id), err)
	}
	return row.toCategory(), nil
}

func (s *PostgresStore) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	var rows []questionRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toQuestions(rows), nil
}

func (s *PostgresStore) GetQuestion(ctx context.Context, id int64) (trivia.Question, error) {
	var row questionRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return trivia.Question{}, translateErr(fmt.Sprintf("question %d", id), err)
	}
	return row.toQuestion(), nil
}

func (s *PostgresStore) CreateQuestion(ctx context.Context, in CreateQuestionInput) (trivia.Question, error) {
	row := questionRow{
		Question:   in.Question,
		Answer:     in.Answer,
		CategoryID: in.Category,
		Difficulty: in.Difficulty,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return trivia.Question{}, translateErr("create question", err)
	}
	return row.toQuestion(), nil
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&questionRow{}, id)
	if res.Error != nil {
		return translateErr(fmt.Sprintf("delete question %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, trivia.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	var rows []questionRow
	err := s.db.WithContext(ctx).
		Where("question ILIKE ?", "%"+escapeLike(term)+"%").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toQuestions(rows), nil
}

func (s *PostgresStore) QuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	var rows []questionRow
	err := s.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("questions by category %d: %w", categoryID, err)
	}
	return toQuestions(rows), nil
}

func (s *PostgresStore) QuizCandidates(ctx context.Context, categoryID int64, exclude []int64) ([]trivia.Question, error) {
	q := s.db.WithContext(ctx).Model(&questionRow{})
	if categoryID != 0 {
		q = q.Where("category = ?", categoryID)
	}
	// NOT IN with an empty list renders as NOT IN (NULL) and matches nothing.
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}

	var rows []questionRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}
	return toQuestions(rows), nil
}

func translateErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, trivia.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: unknown category: %w", op, trivia.ErrInvalidInput)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%s: check constraint: %w", op, trivia.ErrInvalidInput)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.Message, trivia.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
