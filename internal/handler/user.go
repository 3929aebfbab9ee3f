package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/service"
)

const weakPasswordMessage = "Password is too weak. It should be at least 8 characters long, " +
	"include an uppercase letter, a lowercase letter, a number, and a special character."

// AuthService is the subset of service.AuthService used by UserHandler.
type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error)
}

// StudentService is the subset of service.StudentService used by UserHandler.
type StudentService interface {
	GetStudent(ctx context.Context, studentID string) (model.StudentDto, error)
	ListStudentListings(ctx context.Context, studentID string) ([]model.ListingDto, error)
}

// UserHandler handles HTTP requests for accounts and student profiles.
type UserHandler struct {
	auth     AuthService
	students StudentService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth AuthService, students StudentService) *UserHandler {
	return &UserHandler{auth: auth, students: students}
}

// HandleAuthenticate handles POST /user/authenticate requests.
func (h *UserHandler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusUnauthorized, errorResponse("User not found."))
		case errors.Is(err, service.ErrIncorrectPassword):
			writeJSON(w, http.StatusUnauthorized, errorResponse("Incorrect password."))
		case errors.Is(err, service.ErrInvalidRequest):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRegister handles POST /user/register requests.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse("Username already exists."))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse("Email already exists."))
		case errors.Is(err, service.ErrWeakPassword):
			writeJSON(w, http.StatusBadRequest, errorResponse(weakPasswordMessage))
		case errors.Is(err, service.ErrRegistrationFailed):
			writeJSON(w, http.StatusBadRequest, errorResponse("Registration failed. Try again."))
		case errors.Is(err, service.ErrInvalidRequest):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetStudent handles GET /user/{studentId} requests.
func (h *UserHandler) HandleGetStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	if !validID(studentID) {
		writeJSON(w, http.StatusNotFound, errorResponse("Student not found."))
		return
	}

	resp, err := h.students.GetStudent(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Student not found."))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListStudentListings handles GET /user/{studentId}/listings requests.
func (h *UserHandler) HandleListStudentListings(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	if !validID(studentID) {
		writeJSON(w, http.StatusNotFound, errorResponse("Student not found."))
		return
	}

	listings, err := h.students.ListStudentListings(r.Context(), studentID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listings)
}
