package handlers

import (
	"net/http"

	matchessvc "github.com/jordanhale/emberline/internal/services/matches"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/dto"
	httperrors "github.com/jordanhale/emberline/internal/transport/http/errors"
)

type BlocksHandler struct {
	service *matchessvc.Service
}

func NewBlocksHandler(service *matchessvc.Service) *BlocksHandler {
	return &BlocksHandler{service: service}
}

func (h *BlocksHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Block(r.Context(), identity.UserID, req.UserID); err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *BlocksHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Unblock(r.Context(), identity.UserID, req.UserID); err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *BlocksHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	items, err := h.service.Blocked(r.Context(), identity.UserID)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	responses := make([]dto.BlockedUserResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.BlockedUserResponse{
			UserID:    item.UserID,
			FirstName: item.FirstName,
			LastName:  item.LastName,
			BlockedAt: item.BlockedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.BlockedListResponse{Items: responses})
}
