package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-card-share/internal/service"
	"github.com/MKhiriev/go-card-share/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrPasswordConfirmMismatch: http.StatusBadRequest,
	service.ErrSamePassword:            http.StatusBadRequest,
	service.ErrAccessDenied:            http.StatusForbidden,

	ErrAssetTooLarge:        http.StatusBadRequest,
	ErrUnsupportedAssetType: http.StatusBadRequest,

	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrShareIDAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrCardNotFound:         http.StatusNotFound,
	store.ErrNoFieldsToUpdate:     http.StatusBadRequest,
	store.ErrAttemptNotSaved:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
