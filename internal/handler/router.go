package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/service"
	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 5 * time.Second
	maxBodyBytes          = 1 << 20
)

type Config struct {
	RequestTimeout time.Duration
	// Health is called by GET /health. Nil reports healthy.
	Health func(ctx context.Context) error
}

func NewRouter(svc service.TriviaService, cfg Config, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	r := mux.NewRouter()
	r.NotFoundHandler = notFoundHandler(log)
	r.MethodNotAllowedHandler = methodNotAllowedHandler(log)

	RegisterCategoryHandlers(r, svc, cfg.RequestTimeout, log)
	RegisterQuestionHandlers(r, svc, cfg.RequestTimeout, log)
	RegisterQuizHandlers(r, svc, cfg.RequestTimeout, log)
	registerHealth(r, cfg, log)

	return withRequestID(withAccessLog(log, withRecover(log, r)))
}

func registerHealth(r *mux.Router, cfg Config, log *zap.Logger) {
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if cfg.Health != nil {
			ctx, cancel := context.WithTimeout(req.Context(), cfg.RequestTimeout)
			defer cancel()

			if err := cfg.Health(ctx); err != nil {
				log.Error("health check failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
	}).Methods(http.MethodGet)
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, trivia.ErrBadRequest
	}
	return id, nil
}

func nonNil(qs []trivia.Question) []trivia.Question {
	if qs == nil {
		return []trivia.Question{}
	}
	return qs
}
