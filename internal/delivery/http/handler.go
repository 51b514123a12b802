package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vogiaan1904/codeclash/internal/service"
	"github.com/vogiaan1904/codeclash/pkg/logger"
)

type HTTPHandler struct {
	matchmakingService service.MatchmakingService
	roomService        service.RoomService
	questionService    service.QuestionService
	healthService      service.HealthService
	logger             logger.Logger
	validator          *validator.Validate
}

func NewHTTPHandler(
	matchmakingService service.MatchmakingService,
	roomService service.RoomService,
	questionService service.QuestionService,
	healthService service.HealthService,
	logger logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		matchmakingService: matchmakingService,
		roomService:        roomService,
		questionService:    questionService,
		healthService:      healthService,
		logger:             logger,
		validator:          validator.New(),
	}
}

// Root handles the banner endpoint
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "1v1 Coding Platform Backend running",
	})
}

// Health handles health check requests, including store diagnostics
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.healthService.Check(r.Context()))
}

// Join handles matchmaking join requests
func (h *HTTPHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req service.JoinInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Name is required", err)
		return
	}

	response, err := h.matchmakingService.Join(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			h.respondError(w, http.StatusBadRequest, "Name is required", err)
		default:
			h.logger.Error(r.Context(), "Failed to join matchmaking", "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to join matchmaking", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// GetRoom handles room retrieval requests
func (h *HTTPHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	response, err := h.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			h.respondError(w, http.StatusNotFound, "Room not found", err)
		default:
			h.logger.Error(r.Context(), "Failed to get room", "error", err, "room_id", roomID)
			h.respondError(w, http.StatusInternalServerError, "Failed to get room", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// ListMessages handles message listing requests
func (h *HTTPHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	msgs, err := h.roomService.ListMessages(r.Context(), roomID, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			h.respondError(w, http.StatusNotFound, "Room not found", err)
		default:
			h.logger.Error(r.Context(), "Failed to list messages", "error", err, "room_id", roomID)
			h.respondError(w, http.StatusInternalServerError, "Failed to list messages", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, msgs)
}

// SendMessage handles chat message requests
func (h *HTTPHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var req service.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	if err := h.roomService.SendMessage(r.Context(), roomID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			h.respondError(w, http.StatusNotFound, "Room not found", err)
		default:
			h.logger.Error(r.Context(), "Failed to send message", "error", err, "room_id", roomID)
			h.respondError(w, http.StatusInternalServerError, "Failed to send message", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// UpdateEditor handles shared editor replacement requests
func (h *HTTPHandler) UpdateEditor(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var req service.UpdateEditorInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.roomService.UpdateEditor(r.Context(), roomID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			h.respondError(w, http.StatusNotFound, "Room not found", err)
		default:
			h.logger.Error(r.Context(), "Failed to update editor", "error", err, "room_id", roomID)
			h.respondError(w, http.StatusInternalServerError, "Failed to update editor", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// ListQuestions handles catalog listing requests
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "Failed to list questions", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to list questions", err)
		return
	}

	h.respondJSON(w, http.StatusOK, questions)
}

// SeedQuestions handles idempotent catalog seeding requests
func (h *HTTPHandler) SeedQuestions(w http.ResponseWriter, r *http.Request) {
	response, err := h.questionService.Seed(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "Failed to seed questions", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to seed questions", err)
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// Helper functions

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(context.Background(), "Failed to encode JSON response", "error", err)
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	response := map[string]interface{}{
		"error": message,
		"code":  statusCode,
	}

	if err != nil {
		h.logger.Debug(context.Background(), "Error response", "message", message, "error", err.Error())
	}

	h.respondJSON(w, statusCode, response)
}
