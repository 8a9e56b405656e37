package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/httputil"
)

// Service is the contact form surface consumed by this handler.
type Service interface {
	Submit(ctx context.Context, name, email, message string) error
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Submit handles contact form submissions.
// POST /v1/contact
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request")
		return
	}

	err := h.service.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			httputil.Error(w, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, domain.ErrInvalidInput):
			httputil.Error(w, http.StatusBadRequest, "invalid input")
		default:
			h.logger.Error("failed to store contact message", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "failed to send message")
		}
		return
	}

	httputil.JSON(w, http.StatusCreated, MessageResponse{
		Message: "Thanks for reaching out. We'll get back to you soon.",
	})
}
