package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-card-share/internal/service"
	"github.com/MKhiriev/go-card-share/internal/utils"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// identityCapture records the identity the middleware injected, if any.
type identityCapture struct {
	called bool
	userID int64
	role   string
	hasID  bool
}

func captureNext(c *identityCapture) http.Handler {
	return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		c.called = true
		c.userID, c.hasID = utils.GetUserIDFromContext(r.Context())
		c.role, _ = utils.GetUserRoleFromContext(r.Context())
	})
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	rec := httptest.NewRecorder()

	h.auth(captureNext(&capture)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, capture.called)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "scheme without token", header: "Bearer"},
		{name: "empty token", header: "Bearer "},
		{name: "too many parts", header: "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, _, _ := newTestHandler(t, ctrl)

			var capture identityCapture
			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			h.auth(captureNext(&capture)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), ErrInvalidAuthorizationHeader.Error())
			assert.False(t, capture.called)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Authorize(gomock.Any(), "bad-token").
		Return(models.User{}, service.ErrTokenIsExpiredOrInvalid)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	h.auth(captureNext(&capture)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, capture.called)
}

func TestAuthMiddleware_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Authorize(gomock.Any(), "good-token").
		Return(models.User{UserID: 7, Role: models.RoleAdmin}, nil)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.auth(captureNext(&capture)).ServeHTTP(rec, req)

	require.True(t, capture.called)
	assert.Equal(t, int64(7), capture.userID)
	assert.Equal(t, models.RoleAdmin, capture.role)
}

func TestAuthOptionalMiddleware_AnonymousPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	rec := httptest.NewRecorder()

	h.authOptional(captureNext(&capture)).ServeHTTP(rec, req)

	require.True(t, capture.called)
	assert.False(t, capture.hasID)
}

func TestAuthOptionalMiddleware_InvalidTokenStaysAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Authorize(gomock.Any(), "bad-token").
		Return(models.User{}, service.ErrTokenIsExpiredOrInvalid)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	h.authOptional(captureNext(&capture)).ServeHTTP(rec, req)

	require.True(t, capture.called)
	assert.False(t, capture.hasID, "an invalid token must leave the request anonymous")
}

func TestAuthOptionalMiddleware_ValidTokenResolvesIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Authorize(gomock.Any(), "good-token").
		Return(models.User{UserID: 7, Role: models.RoleUser}, nil)

	var capture identityCapture
	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.authOptional(captureNext(&capture)).ServeHTTP(rec, req)

	require.True(t, capture.called)
	assert.True(t, capture.hasID)
	assert.Equal(t, int64(7), capture.userID)
}
