package server

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"pizza-bot/domain"
	"pizza-bot/errors"
	"pizza-bot/observability"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	maxBodyBytes = 1 << 20

	msgMissing      = "Mensagem não fornecida"
	msgTooLong      = "Mensagem muito longa"
	msgInvalidJSON  = "JSON inválido"
	msgServiceError = "Erro interno ao processar a mensagem"
)

type Responder interface {
	Respond(message string) domain.Turn
	Catalog() domain.Catalog
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ChatServer exposes the responder over JSON/HTTP.
type ChatServer struct {
	log              *slog.Logger
	responder        Responder
	monitoring       *observability.MonitoringManager
	validate         *validator.Validate
	maxMessageLength int
}

// NewChatServer builds the server. monitoring may be nil, /stats is then not mounted.
func NewChatServer(log *slog.Logger, responder Responder,
	monitoring *observability.MonitoringManager, maxMessageLength int) *ChatServer {
	return &ChatServer{
		log:              log,
		responder:        responder,
		monitoring:       monitoring,
		validate:         validator.New(),
		maxMessageLength: maxMessageLength,
	}
}

func (s *ChatServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)

	r.Post("/chat", s.chat)
	r.Get("/intents", s.intents)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	if s.monitoring != nil {
		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, s.monitoring.GetLatest())
		})
	}
	return r
}

func (s *ChatServer) chat(w http.ResponseWriter, req *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.log.Debug("Invalid chat request", "err", err, "request_id", middleware.GetReqID(req.Context()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidJSON})
		return
	}

	if err := s.validateMessage(body); err != nil {
		switch {
		case goerrors.Is(err, errors.ErrMessageTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgTooLong})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissing})
		}
		return
	}

	turn := s.responder.Respond(body.Message)
	if s.monitoring != nil {
		s.monitoring.Record(turn)
	}

	s.log.Info("Message answered",
		"request_id", middleware.GetReqID(req.Context()),
		"turn_id", turn.ID,
		"intent", turn.Intent,
		"probability", turn.Probability())
	writeJSON(w, http.StatusOK, turn.ToReply())
}

func (s *ChatServer) validateMessage(body chatRequest) error {
	if err := s.validate.Struct(body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrEmptyMessage, err)
	}
	if s.maxMessageLength > 0 && utf8.RuneCountInString(body.Message) > s.maxMessageLength {
		return fmt.Errorf("%w: more than %d characters", errors.ErrMessageTooLong, s.maxMessageLength)
	}
	return nil
}

func (s *ChatServer) intents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.responder.Catalog())
}

// recoverer turns a panic into a generic JSON 500 so a single bad message
// never takes the server down.
func (s *ChatServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("Panic while serving request",
					"panic", rec,
					"path", req.URL.Path,
					"request_id", middleware.GetReqID(req.Context()))
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgServiceError})
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
