package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/httputil"
)

// Service is the subscription lifecycle consumed by this handler.
type Service interface {
	Register(ctx context.Context, email string) error
	Confirm(ctx context.Context, token string) error
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubscribeResponse struct {
	Success              bool `json:"success"`
	RequiresVerification bool `json:"requiresVerification"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Subscribe handles newsletter sign-up.
// POST /v1/newsletter/subscribe
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request")
		return
	}

	err := h.service.Register(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			httputil.Error(w, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, domain.ErrAlreadySubscribed):
			httputil.Error(w, http.StatusConflict, "email already subscribed")
		default:
			h.logger.Error("failed to register subscription", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "subscription failed")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, SubscribeResponse{
		Success:              true,
		RequiresVerification: true,
	})
}

// Verify handles verification link visits.
// GET /v1/newsletter/verify?token=...
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httputil.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	err := h.service.Confirm(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			httputil.Error(w, http.StatusNotFound, "invalid verification token")
		case errors.Is(err, domain.ErrTokenExpired):
			httputil.Error(w, http.StatusGone, "verification token expired")
		default:
			h.logger.Error("failed to confirm subscription", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, MessageResponse{
		Message: "Subscription confirmed",
	})
}
