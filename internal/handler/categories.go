package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/service"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type categoriesResponse struct {
	Success         bool             `json:"success"`
	Categories      map[int64]string `json:"categories"`
	TotalCategories int              `json:"total_categories"`
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	CurrentCategory int64             `json:"currentCategory"`
}

func RegisterCategoryHandlers(r *mux.Router, svc service.TriviaService, timeout time.Duration, log *zap.Logger) {
	r.HandleFunc("/categories", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		cats, err := svc.ListCategories(ctx)
		if err != nil {
			fail(w, log, "list categories failed", err)
			return
		}

		log.Debug("categories listed", zap.Int("count", len(cats)))
		writeJSON(w, http.StatusOK, categoriesResponse{
			Success:         true,
			Categories:      trivia.CategoryMap(cats),
			TotalCategories: len(cats),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/categories/{id:[0-9]+}/questions", func(w http.ResponseWriter, req *http.Request) {
		id, err := pathID(req)
		if err != nil {
			fail(w, log, "category questions bad id", err, zap.String("id", mux.Vars(req)["id"]))
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		res, err := svc.QuestionsByCategory(ctx, id)
		if err != nil {
			fail(w, log, "category questions failed", err, zap.Int64("category_id", id))
			return
		}

		writeJSON(w, http.StatusOK, categoryQuestionsResponse{
			Success:         true,
			Questions:       nonNil(res.Questions),
			TotalQuestions:  len(res.Questions),
			CurrentCategory: res.Category.ID,
		})
	}).Methods(http.MethodGet)
}
