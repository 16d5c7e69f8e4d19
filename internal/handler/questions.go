package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/service"
	"github.com/ArtemMoroz51/trivia-api/internal/storage"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// createQuestionReq accepts category and difficulty as numbers or numeric strings.
type createQuestionReq struct {
	Question   string       `json:"question"`
	Answer     string       `json:"answer"`
	Category   *json.Number `json:"category"`
	Difficulty *json.Number `json:"difficulty"`
}

type searchReq struct {
	SearchTerm *string `json:"searchTerm"`
}

type questionsPageResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	Categories      map[int64]string  `json:"categories"`
	CurrentCategory *int64            `json:"currentCategory"`
}

type createdResponse struct {
	Success        bool              `json:"success"`
	Created        int64             `json:"created"`
	Questions      []trivia.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

type deletedResponse struct {
	Success        bool              `json:"success"`
	Deleted        int64             `json:"deleted"`
	Questions      []trivia.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

type searchResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	CurrentCategory *int64            `json:"currentCategory"`
}

func (req createQuestionReq) toInput() (storage.CreateQuestionInput, error) {
	in := storage.CreateQuestionInput{Question: req.Question, Answer: req.Answer}

	if req.Category != nil {
		v, err := req.Category.Int64()
		if err != nil {
			return in, fmt.Errorf("%w: category must be an integer", trivia.ErrInvalidInput)
		}
		in.Category = v
	}
	if req.Difficulty != nil {
		v, err := req.Difficulty.Int64()
		if err != nil {
			return in, fmt.Errorf("%w: difficulty must be an integer", trivia.ErrInvalidInput)
		}
		in.Difficulty = int(v)
	}
	return in, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", trivia.ErrBadRequest, err.Error())
	}
	return nil
}

func RegisterQuestionHandlers(r *mux.Router, svc service.TriviaService, timeout time.Duration, log *zap.Logger) {
	r.HandleFunc("/questions", func(w http.ResponseWriter, req *http.Request) {
		page := trivia.ParsePage(req.URL.Query().Get("page"))

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		p, err := svc.ListQuestions(ctx, page)
		if err != nil {
			fail(w, log, "list questions failed", err, zap.Int("page", page))
			return
		}

		writeJSON(w, http.StatusOK, questionsPageResponse{
			Success:        true,
			Questions:      nonNil(p.Questions),
			TotalQuestions: p.Total,
			Categories:     trivia.CategoryMap(p.Categories),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/questions", func(w http.ResponseWriter, req *http.Request) {
		var body createQuestionReq
		if err := decodeBody(w, req, &body); err != nil {
			fail(w, log, "create question bad json", err)
			return
		}

		in, err := body.toInput()
		if err != nil {
			fail(w, log, "create question bad payload", err)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		q, p, err := svc.CreateQuestion(ctx, in, trivia.ParsePage(req.URL.Query().Get("page")))
		if err != nil {
			fail(w, log, "create question failed", err)
			return
		}

		log.Info("question created", zap.Int64("id", q.ID), zap.Int64("category", q.Category))
		writeJSON(w, http.StatusOK, createdResponse{
			Success:        true,
			Created:        q.ID,
			Questions:      nonNil(p.Questions),
			TotalQuestions: p.Total,
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/questions/search", func(w http.ResponseWriter, req *http.Request) {
		var body searchReq
		if err := decodeBody(w, req, &body); err != nil {
			fail(w, log, "search bad json", err)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		qs, err := svc.SearchQuestions(ctx, body.SearchTerm)
		if err != nil {
			fail(w, log, "search questions failed", err)
			return
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Success:        true,
			Questions:      nonNil(qs),
			TotalQuestions: len(qs),
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/questions/{id:[0-9]+}", func(w http.ResponseWriter, req *http.Request) {
		id, err := pathID(req)
		if err != nil {
			fail(w, log, "delete question bad id", err, zap.String("id", mux.Vars(req)["id"]))
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		p, err := svc.DeleteQuestion(ctx, id, trivia.ParsePage(req.URL.Query().Get("page")))
		if err != nil {
			fail(w, log, "delete question failed", err, zap.Int64("id", id))
			return
		}

		log.Info("question deleted", zap.Int64("id", id))
		writeJSON(w, http.StatusOK, deletedResponse{
			Success:        true,
			Deleted:        id,
			Questions:      nonNil(p.Questions),
			TotalQuestions: p.Total,
		})
	}).Methods(http.MethodDelete)
}
