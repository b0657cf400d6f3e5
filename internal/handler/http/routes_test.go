package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-card-share/internal/store"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	router := h.Init()

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/user/me"},
		{http.MethodPatch, "/api/user/me"},
		{http.MethodPost, "/api/user/password"},
		{http.MethodGet, "/api/user/logins"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/cards"},
		{http.MethodGet, "/api/cards"},
		{http.MethodPatch, "/api/cards/42"},
		{http.MethodDelete, "/api/cards/42"},
		{http.MethodPost, "/api/cards/42/share"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.target, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s must require a token", route.method, route.target)
	}
}

func TestRoutes_PublicShareLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCards := newTestHandler(t, ctrl)
	router := h.Init()

	mockCards.EXPECT().FindByShareID(gomock.Any(), "share-1").
		Return(models.Card{CardID: 42, ShareID: "share-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/share/share-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader), "every response carries a trace id")
}

func TestRoutes_PublicCardViewIsAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCards := newTestHandler(t, ctrl)
	router := h.Init()

	mockCards.EXPECT().FindOne(gomock.Any(), int64(42), gomock.Nil()).
		Return(models.Card{}, store.ErrCardNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
