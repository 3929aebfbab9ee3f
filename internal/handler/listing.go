package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/housingportal/housingportal-go/internal/middleware"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/service"
)

// ListingService is the subset of service.ListingService used by ListingHandler.
type ListingService interface {
	ListAll(ctx context.Context) ([]model.ListingDto, error)
	Get(ctx context.Context, listingID string) (model.ListingDto, error)
	Create(ctx context.Context, callerID string, req model.ListingRequest) (model.ListingDto, error)
	Update(ctx context.Context, callerID, listingID string, req model.ListingRequest) (model.ListingDto, error)
	Delete(ctx context.Context, callerID, listingID string) (model.ListingDto, error)
}

// ListingHandler handles HTTP requests for housing listings.
type ListingHandler struct {
	service ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc ListingService) *ListingHandler {
	return &ListingHandler{service: svc}
}

// HandleList handles GET /listings requests.
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listings)
}

// HandleGet handles GET /listings/{id} requests.
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), listingID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /listings requests.
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), identity.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse("No student is associated with this account."))
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /listings/{id} requests.
func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	listingID, ok := listingIDParam(w, r)
	if !ok {
		return
	}

	var req model.ListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), identity.ID, listingID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /listings/{id} requests.
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	listingID, ok := listingIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Delete(r.Context(), identity.ID, listingID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ListingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	case errors.Is(err, service.ErrListingNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse("Listing not found."))
	case errors.Is(err, service.ErrListingExists):
		writeJSON(w, http.StatusBadRequest, errorResponse("Listing already exists."))
	case errors.Is(err, service.ErrNotListingOwner):
		writeJSON(w, http.StatusBadRequest, errorResponse("You can only modify your own listings."))
	case errors.Is(err, service.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}

func listingIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	listingID := chi.URLParam(r, "id")
	if !validID(listingID) {
		writeJSON(w, http.StatusNotFound, errorResponse("Listing not found."))
		return "", false
	}
	return listingID, true
}
