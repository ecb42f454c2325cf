package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communitypulse/internal/delivery/http/middleware"
	"communitypulse/internal/domain"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpResult *domain.User
	signUpErr    error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	listResult   []*domain.User
	listTotal    int
	listErr      error
	flagResult   *domain.User
	flagErr      error
	lastFlagged  string
	lastCallerID string
}

func (f *fakeUserService) SignUp(ctx context.Context, email, password, name, phone string) (*domain.User, error) {
	return f.signUpResult, f.signUpErr
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserService) ListUsers(ctx context.Context, callerID string, params domain.PaginationParams) ([]*domain.User, int, error) {
	f.lastCallerID = callerID
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeUserService) BanUser(ctx context.Context, userID, callerID string) (*domain.User, error) {
	f.lastFlagged = userID
	f.lastCallerID = callerID
	return f.flagResult, f.flagErr
}

func (f *fakeUserService) VerifyOrganizer(ctx context.Context, userID, callerID string) (*domain.User, error) {
	f.lastFlagged = userID
	f.lastCallerID = callerID
	return f.flagResult, f.flagErr
}

func TestUserController_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			listResult: []*domain.User{{ID: "u-1", Email: "ana@example.com"}},
			listTotal:  1,
		}
		c := NewUserController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
		rec := httptest.NewRecorder()
		c.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin-1", svc.lastCallerID)
	})

	t.Run("forbidden for non-admin", func(t *testing.T) {
		svc := &fakeUserService{listErr: domain.ErrForbidden}
		c := NewUserController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "org-1"))
		rec := httptest.NewRecorder()
		c.List(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no auth context", func(t *testing.T) {
		c := NewUserController(testLogger, &fakeUserService{})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		c.List(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserController_Ban(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{
				flagResult: &domain.User{ID: "u-1", Banned: true},
				flagErr:    tt.svcErr,
			}
			c := NewUserController(testLogger, svc)

			req := httptest.NewRequest(http.MethodPatch, "/users/u-1/ban", nil)
			req.SetPathValue("id", "u-1")
			req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
			rec := httptest.NewRecorder()
			c.Ban(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "u-1", svc.lastFlagged)
				assert.Equal(t, "admin-1", svc.lastCallerID)
			}
		})
	}
}

func TestUserController_Verify(t *testing.T) {
	svc := &fakeUserService{flagResult: &domain.User{ID: "u-1", VerifiedOrganizer: true}}
	c := NewUserController(testLogger, svc)

	req := httptest.NewRequest(http.MethodPatch, "/users/u-1/verify", nil)
	req.SetPathValue("id", "u-1")
	req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
	rec := httptest.NewRecorder()
	c.Verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["verifiedOrganizer"])
}
