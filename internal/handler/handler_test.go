package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/housingportal/housingportal-go/internal/crypto"
	"github.com/housingportal/housingportal-go/internal/middleware"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/stretchr/testify/require"
)

const (
	aliceID   = "6f1c2a8e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"
	bobID     = "7a2d3b9f-4c5e-4f60-9bac-1d2e3f4a5b6c"
	listingID = "0b9e8d7c-6a5b-4c3d-8e2f-1a0b9c8d7e6f"
)

type stubAuth struct {
	login    func(model.LoginRequest) (model.AuthResult, error)
	register func(model.RegisterRequest) (model.AuthResult, error)
}

func (s stubAuth) Login(_ context.Context, req model.LoginRequest) (model.AuthResult, error) {
	return s.login(req)
}

func (s stubAuth) Register(_ context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	return s.register(req)
}

type stubStudents struct {
	get      func(string) (model.StudentDto, error)
	listings func(string) ([]model.ListingDto, error)
}

func (s stubStudents) GetStudent(_ context.Context, id string) (model.StudentDto, error) {
	return s.get(id)
}

func (s stubStudents) ListStudentListings(_ context.Context, id string) ([]model.ListingDto, error) {
	return s.listings(id)
}

type stubListings struct {
	list   func() ([]model.ListingDto, error)
	get    func(string) (model.ListingDto, error)
	create func(string, model.ListingRequest) (model.ListingDto, error)
	update func(string, string, model.ListingRequest) (model.ListingDto, error)
	delete func(string, string) (model.ListingDto, error)
}

func (s stubListings) ListAll(context.Context) ([]model.ListingDto, error) { return s.list() }

func (s stubListings) Get(_ context.Context, id string) (model.ListingDto, error) { return s.get(id) }

func (s stubListings) Create(_ context.Context, caller string, req model.ListingRequest) (model.ListingDto, error) {
	return s.create(caller, req)
}

func (s stubListings) Update(_ context.Context, caller, id string, req model.ListingRequest) (model.ListingDto, error) {
	return s.update(caller, id, req)
}

func (s stubListings) Delete(_ context.Context, caller, id string) (model.ListingDto, error) {
	return s.delete(caller, id)
}

var testIssuer = crypto.NewTokenIssuer("test-secret", "housingportal", "housingportal-api", time.Hour)

func tokenFor(t *testing.T, id, username string) string {
	t.Helper()
	token, err := testIssuer.Issue(&model.User{ID: id, Username: username, Roles: []string{model.RoleStudent}})
	require.NoError(t, err)
	return token
}

func newTestRouter(auth AuthService, students StudentService, listings ListingService) http.Handler {
	users := NewUserHandler(auth, students)
	lh := NewListingHandler(listings)

	r := chi.NewRouter()
	r.Route("/listings", func(r chi.Router) {
		r.Get("/", lh.HandleList)
		r.Get("/{id}", lh.HandleGet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(testIssuer))
			r.Post("/", lh.HandleCreate)
			r.Put("/{id}", lh.HandleUpdate)
			r.Delete("/{id}", lh.HandleDelete)
		})
	})
	r.Route("/user", func(r chi.Router) {
		r.Post("/authenticate", users.HandleAuthenticate)
		r.Post("/register", users.HandleRegister)
		r.Get("/{studentId}", users.HandleGetStudent)
		r.Get("/{studentId}/listings", users.HandleListStudentListings)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) model.AuthResult {
	t.Helper()
	var res model.AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}
