package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEscapeLike(t *testing.T) {
	require.Equal(t, "title", escapeLike("title"))
	require.Equal(t, `100\%`, escapeLike("100%"))
	require.Equal(t, `a\_b`, escapeLike("a_b"))
	require.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}

func TestTranslateErr(t *testing.T) {
	err := translateErr("question 3", gorm.ErrRecordNotFound)
	require.ErrorIs(t, err, trivia.ErrNotFound)

	err = translateErr("create question", gorm.ErrForeignKeyViolated)
	require.ErrorIs(t, err, trivia.ErrInvalidInput)

	err = translateErr("create question", gorm.ErrCheckConstraintViolated)
	require.ErrorIs(t, err, trivia.ErrInvalidInput)

	err = translateErr("create question", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgNotNullViolation, Message: "null value"}))
	require.ErrorIs(t, err, trivia.ErrInvalidInput)

	boom := errors.New("connection reset")
	err = translateErr("create question", boom)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, trivia.ErrInvalidInput)
	require.NotErrorIs(t, err, trivia.ErrNotFound)
}

func TestGormLogLevel(t *testing.T) {
	require.NotEqual(t, gormLogLevel("debug"), gormLogLevel("error"))
	require.Equal(t, gormLogLevel("warn"), gormLogLevel("warning"))
}

// newTestStore connects to TEST_DATABASE_URL and resets both tables.
func newTestStore(t *testing.T) (*PostgresStore, *gorm.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db, err := Open(pool, "error")
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, db.Exec("TRUNCATE questions, categories RESTART IDENTITY CASCADE").Error)

	n, err := SeedCategories(ctx, db)
	require.NoError(t, err)
	require.Equal(t, len(defaultCategories), n)

	return NewPostgresStore(db), db
}

func TestPostgresStore_Integration(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	n, err := SeedCategories(ctx, db)
	require.NoError(t, err)
	require.Zero(t, n)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(defaultCategories))
	require.Equal(t, "Art", cats[0].Type)

	science, err := s.GetCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Science", science.Type)

	_, err = s.GetCategory(ctx, 999)
	require.ErrorIs(t, err, trivia.ErrNotFound)

	q1, err := s.CreateQuestion(ctx, CreateQuestionInput{Question: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 1})
	require.NoError(t, err)
	require.NotZero(t, q1.ID)

	q2, err := s.CreateQuestion(ctx, CreateQuestionInput{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: 2, Difficulty: 2})
	require.NoError(t, err)

	_, err = s.CreateQuestion(ctx, CreateQuestionInput{Question: "Q", Answer: "A", Category: 999, Difficulty: 1})
	require.ErrorIs(t, err, trivia.ErrInvalidInput)

	got, err := s.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	require.Equal(t, q1, got)

	all, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	require.Equal(t, []trivia.Question{q1, q2}, all)

	found, err := s.SearchQuestions(ctx, "mona")
	require.NoError(t, err)
	require.Equal(t, []trivia.Question{q2}, found)

	found, err = s.SearchQuestions(ctx, "%")
	require.NoError(t, err)
	require.Empty(t, found)

	byCat, err := s.QuestionsByCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []trivia.Question{q1}, byCat)

	cands, err := s.QuizCandidates(ctx, 0, nil)
	require.NoError(t, err)
	require.Len(t, cands, 2)

	cands, err = s.QuizCandidates(ctx, 0, []int64{q1.ID})
	require.NoError(t, err)
	require.Equal(t, []trivia.Question{q2}, cands)

	cands, err = s.QuizCandidates(ctx, 1, []int64{q1.ID})
	require.NoError(t, err)
	require.Empty(t, cands)

	require.NoError(t, s.DeleteQuestion(ctx, q1.ID))
	_, err = s.GetQuestion(ctx, q1.ID)
	require.ErrorIs(t, err, trivia.ErrNotFound)
	require.ErrorIs(t, s.DeleteQuestion(ctx, q1.ID), trivia.ErrNotFound)
}
