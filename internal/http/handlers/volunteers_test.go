package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/volunteerhub/api/internal/cache"
	"github.com/volunteerhub/api/internal/domain/registration"
	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/domain/user"
	"github.com/volunteerhub/api/internal/http/handlers"
)

type fakeUserLister struct {
	list func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUserLister) List(ctx context.Context) ([]user.User, error) {
	return f.list(ctx)
}

type fakeSignup struct {
	register func(ctx context.Context, userID, serviceID string) (registration.SignupResult, error)
}

func (f *fakeSignup) RegisterVolunteer(ctx context.Context, userID, serviceID string) (registration.SignupResult, error) {
	return f.register(ctx, userID, serviceID)
}

const testServiceID = "7b8c0c0e-8f4d-4a7e-b7d1-2f4f6a9c1e23"

func signupRequest(serviceID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/volunteer-for-service/"+serviceID, nil)
	req.Header.Set("Authorization", "Bearer anything")

	return req
}

func TestVolunteersList_NeverExposesPasswordHashes(t *testing.T) {
	lister := &fakeUserLister{
		list: func(ctx context.Context) ([]user.User, error) {
			return []user.User{
				{ID: "u-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "bcrypt-secret"},
				{ID: "u-2", Name: "Bob", Email: "bob@example.com", PasswordHash: "bcrypt-secret"},
			}, nil
		},
	}

	h := handlers.NewVolunteersHandler(lister, nil, nil)

	router := authedRouter("u-1", func(public, protected gin.IRoutes) {
		protected.GET("/api/volunteers", h.List)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/volunteers", nil)
	req.Header.Set("Authorization", "Bearer anything")

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items []map[string]interface{} `json:"items"`
		Count int                      `json:"count"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("unexpected envelope %+v", resp)
	}

	for _, item := range resp.Items {
		for key := range item {
			if key == "password" || key == "passwordHash" {
				t.Fatalf("password material leaked: %v", item)
			}
		}
	}
}

func TestVolunteerSignUp_FirstTime(t *testing.T) {
	listCache := cache.NewMemory(time.Minute)
	listCache.Set(context.Background(), "warm", []byte(`{}`))

	signup := &fakeSignup{
		register: func(ctx context.Context, userID, serviceID string) (registration.SignupResult, error) {
			if userID != "u-1" || serviceID != testServiceID {
				t.Fatalf("unexpected args %q %q", userID, serviceID)
			}

			return registration.SignupResult{
				Registration: registration.New(userID, serviceID),
			}, nil
		},
	}

	h := handlers.NewVolunteersHandler(nil, signup, listCache)

	router := authedRouter("u-1", func(public, protected gin.IRoutes) {
		protected.POST("/api/volunteer-for-service/:serviceId", h.SignUp)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, signupRequest(testServiceID))

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message           string                    `json:"message"`
		Registration      registration.Registration `json:"registration"`
		AlreadyRegistered bool                      `json:"alreadyRegistered"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Message != "Successfully volunteered for service" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	if resp.AlreadyRegistered {
		t.Fatal("first signup must not report alreadyRegistered")
	}

	if resp.Registration.UserID != "u-1" || resp.Registration.ServiceID != testServiceID {
		t.Fatalf("unexpected registration %+v", resp.Registration)
	}

	if _, ok := listCache.Get(context.Background(), "warm"); ok {
		t.Fatal("first signup must invalidate listings")
	}
}

func TestVolunteerSignUp_RepeatKeepsCache(t *testing.T) {
	listCache := cache.NewMemory(time.Minute)
	listCache.Set(context.Background(), "warm", []byte(`{}`))

	signup := &fakeSignup{
		register: func(ctx context.Context, userID, serviceID string) (registration.SignupResult, error) {
			return registration.SignupResult{
				Registration:      registration.New(userID, serviceID),
				AlreadyRegistered: true,
			}, nil
		},
	}

	h := handlers.NewVolunteersHandler(nil, signup, listCache)

	router := authedRouter("u-1", func(public, protected gin.IRoutes) {
		protected.POST("/api/volunteer-for-service/:serviceId", h.SignUp)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, signupRequest(testServiceID))

	if rec.Code != http.StatusOK {
		t.Fatalf("repeat signup must stay a success, got %d", rec.Code)
	}

	var resp struct {
		AlreadyRegistered bool `json:"alreadyRegistered"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if !resp.AlreadyRegistered {
		t.Fatal("repeat signup should report alreadyRegistered")
	}

	if _, ok := listCache.Get(context.Background(), "warm"); !ok {
		t.Fatal("repeat signup must not invalidate listings, nothing changed")
	}
}

func TestVolunteerSignUp_UnknownService(t *testing.T) {
	signup := &fakeSignup{
		register: func(ctx context.Context, userID, serviceID string) (registration.SignupResult, error) {
			return registration.SignupResult{}, service.ErrNotFound
		},
	}

	h := handlers.NewVolunteersHandler(nil, signup, nil)

	router := authedRouter("u-1", func(public, protected gin.IRoutes) {
		protected.POST("/api/volunteer-for-service/:serviceId", h.SignUp)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, signupRequest(testServiceID))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}

	var resp handlers.APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Message != "Service not found" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestVolunteerSignUp_RejectsMalformedID(t *testing.T) {
	h := handlers.NewVolunteersHandler(nil, &fakeSignup{
		register: func(ctx context.Context, userID, serviceID string) (registration.SignupResult, error) {
			t.Fatal("store must not be reached for a malformed id")
			return registration.SignupResult{}, nil
		},
	}, nil)

	router := authedRouter("u-1", func(public, protected gin.IRoutes) {
		protected.POST("/api/volunteer-for-service/:serviceId", h.SignUp)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, signupRequest("not-a-uuid"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}
