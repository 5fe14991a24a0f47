package handlers

import (
	"errors"
	"net/http"

	matchessvc "github.com/jordanhale/emberline/internal/services/matches"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/dto"
	httperrors "github.com/jordanhale/emberline/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), identity.UserID, 0)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	responses := make([]dto.MatchResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.MatchResponse{
			MatchID:   item.MatchID,
			UserID:    item.UserID,
			FirstName: item.FirstName,
			Age:       item.Age,
			MatchedAt: item.MatchedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.MatchesListResponse{Items: responses})
}

func (h *MatchesHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.UnmatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Unmatch(r.Context(), identity.UserID, req.UserID); err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleMatchesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid matches request")
	case errors.Is(err, matchessvc.ErrMatchNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process matches request")
	}
}
