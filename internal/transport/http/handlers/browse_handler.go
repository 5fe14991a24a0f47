package handlers

import (
	"errors"
	"net/http"

	"github.com/jordanhale/emberline/internal/domain/rules"
	discoverysvc "github.com/jordanhale/emberline/internal/services/discovery"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/dto"
	httperrors "github.com/jordanhale/emberline/internal/transport/http/errors"
)

type BrowseHandler struct {
	service *discoverysvc.Service
}

func NewBrowseHandler(service *discoverysvc.Service) *BrowseHandler {
	return &BrowseHandler{service: service}
}

func (h *BrowseHandler) Next(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	candidate, found, err := h.service.NextCandidate(r.Context(), identity.UserID, identity.SID)
	if err != nil {
		handleBrowseError(w, err)
		return
	}
	if !found {
		httperrors.Write(w, http.StatusOK, dto.BrowseNextResponse{Exhausted: true})
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BrowseNextResponse{
		Candidate: &dto.BrowseCandidateResponse{
			UserID:    candidate.UserID,
			FirstName: candidate.FirstName,
			LastName:  candidate.LastName,
			Bio:       candidate.Bio,
			Age:       candidate.Age,
			Interests: candidate.Interests,
			Score:     candidate.Score,
			PhotoURLs: candidate.PhotoURLs,
		},
	})
}

func (h *BrowseHandler) Pass(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	var req dto.BrowsePassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Pass(r.Context(), identity.UserID, identity.SID, req.UserID); err != nil {
		handleBrowseError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *BrowseHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := sessionsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	if err := h.service.Refresh(r.Context(), identity.SID); err != nil {
		handleBrowseError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleBrowseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, discoverysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid browse request")
	case errors.Is(err, rules.ErrInvalidBirthdate):
		writeBadRequest(w, "INVALID_BIRTHDATE", "profile birthdate is unusable")
	case errors.Is(err, discoverysvc.ErrProfileNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process browse request")
	}
}
