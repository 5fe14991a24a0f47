package handlers

import (
	"errors"
	"net/http"

	likessvc "github.com/jordanhale/emberline/internal/services/likes"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/dto"
	httperrors "github.com/jordanhale/emberline/internal/transport/http/errors"
)

type LikesHandler struct {
	service *likessvc.Service
}

func NewLikesHandler(service *likessvc.Service) *LikesHandler {
	return &LikesHandler{service: service}
}

func (h *LikesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	var req dto.LikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Like(r.Context(), identity.UserID, req.UserID, req.Message); err != nil {
		handleLikesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *LikesHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	items, err := h.service.Incoming(r.Context(), identity.UserID, 0)
	if err != nil {
		handleLikesError(w, err)
		return
	}

	responses := make([]dto.IncomingLikeResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.IncomingLikeResponse{
			UserID:    item.LikerID,
			FirstName: item.FirstName,
			Age:       item.Age,
			Message:   item.Message,
			LikedAt:   item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.LikesIncomingResponse{Items: responses})
}

func (h *LikesHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	var req dto.LikeRespondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.service.Respond(r.Context(), identity.UserID, req.UserID, req.Action)
	if err != nil {
		handleLikesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LikeRespondResponse{Matched: result.Matched})
}

func handleLikesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, likessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid likes request")
	case errors.Is(err, likessvc.ErrUnsupportedAction):
		writeBadRequest(w, "UNSUPPORTED_ACTION", "action must be match or pass")
	case errors.Is(err, likessvc.ErrLikeNotFound):
		writeNotFound(w, "LIKE_NOT_FOUND", "no pending like from this user")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process likes request")
	}
}
