package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/service"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type quizCategory struct {
	ID   json.Number `json:"id"`
	Type string      `json:"type,omitempty"`
}

type quizReq struct {
	QuizCategory      *quizCategory `json:"quiz_category"`
	PreviousQuestions []int64       `json:"previous_questions"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *trivia.Question `json:"question,omitempty"`
}

func (req quizReq) toRequest() (service.QuizRequest, error) {
	out := service.QuizRequest{PreviousQuestions: req.PreviousQuestions}
	if out.PreviousQuestions == nil {
		out.PreviousQuestions = []int64{}
	}

	if req.QuizCategory != nil && req.QuizCategory.ID != "" {
		id, err := req.QuizCategory.ID.Int64()
		if err != nil {
			return out, fmt.Errorf("%w: quiz_category.id must be an integer", trivia.ErrBadRequest)
		}
		out.CategoryID = id
	}
	return out, nil
}

func RegisterQuizHandlers(r *mux.Router, svc service.TriviaService, timeout time.Duration, log *zap.Logger) {
	r.HandleFunc("/quizzes", func(w http.ResponseWriter, req *http.Request) {
		var body quizReq
		if err := decodeBody(w, req, &body); err != nil {
			fail(w, log, "quiz bad json", err)
			return
		}

		qr, err := body.toRequest()
		if err != nil {
			fail(w, log, "quiz bad payload", err)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		q, err := svc.NextQuizQuestion(ctx, qr)
		if err != nil {
			fail(w, log, "next quiz question failed", err, zap.Int64("category_id", qr.CategoryID))
			return
		}

		if q == nil {
			log.Debug("quiz exhausted", zap.Int64("category_id", qr.CategoryID), zap.Int("previous", len(qr.PreviousQuestions)))
		}
		writeJSON(w, http.StatusOK, quizResponse{Success: true, Question: q})
	}).Methods(http.MethodPost)
}
