package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/models"
)

func newTestAttemptRepo(t *testing.T) (*loginAttemptRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &loginAttemptRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

var attemptTestColumns = []string{"attempt_id", "user_id", "platform", "ip_address", "user_agent", "is_successful", "failure_reason", "created_at"}

func TestCreateAttempt_Success(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := int64(7)
	attempt := models.LoginAttempt{
		UserID:       &userID,
		Platform:     models.PlatformWeb,
		IPAddress:    "203.0.113.9",
		UserAgent:    "Mozilla/5.0",
		IsSuccessful: true,
	}

	rows := sqlmock.
		NewRows(attemptTestColumns).
		AddRow(1, userID, attempt.Platform, attempt.IPAddress, attempt.UserAgent, true, "", time.Now())

	mock.ExpectQuery("INSERT INTO login_attempts").
		WithArgs(&userID, attempt.Platform, attempt.IPAddress, attempt.UserAgent, true, "").
		WillReturnRows(rows)

	created, err := repo.CreateAttempt(ctx, attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AttemptID != 1 {
		t.Errorf("expected AttemptID=1, got %d", created.AttemptID)
	}
	if created.UserID == nil || *created.UserID != userID {
		t.Errorf("expected UserID=%d, got %v", userID, created.UserID)
	}
}

func TestCreateAttempt_NilUserID(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	ctx := context.Background()
	attempt := models.LoginAttempt{
		Platform:      models.PlatformIOS,
		IPAddress:     "203.0.113.9",
		UserAgent:     "CardShare/1.0",
		FailureReason: models.FailureReasonNotFound,
	}

	rows := sqlmock.
		NewRows(attemptTestColumns).
		AddRow(2, nil, attempt.Platform, attempt.IPAddress, attempt.UserAgent, false, attempt.FailureReason, time.Now())

	mock.ExpectQuery("INSERT INTO login_attempts").
		WillReturnRows(rows)

	created, err := repo.CreateAttempt(ctx, attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != nil {
		t.Errorf("expected nil UserID for unresolved email, got %v", created.UserID)
	}
	if created.FailureReason != models.FailureReasonNotFound {
		t.Errorf("expected failure reason %q, got %q", models.FailureReasonNotFound, created.FailureReason)
	}
}

func TestCreateAttempt_InsertFailure(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO login_attempts").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateAttempt(context.Background(), models.LoginAttempt{})
	if !errors.Is(err, ErrAttemptNotSaved) {
		t.Fatalf("expected ErrAttemptNotSaved, got %v", err)
	}
}

func TestFindAttemptsByUser_Success(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	userID := int64(7)
	now := time.Now()

	rows := sqlmock.
		NewRows(attemptTestColumns).
		AddRow(2, userID, models.PlatformAndroid, "203.0.113.9", "CardShare/1.0", false, models.FailureReasonInvalidPassword, now).
		AddRow(1, userID, models.PlatformWeb, "203.0.113.9", "Mozilla/5.0", true, "", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT attempt_id").
		WithArgs(userID).
		WillReturnRows(rows)

	attempts, err := repo.FindAttemptsByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].AttemptID != 2 {
		t.Errorf("expected newest first, got AttemptID=%d", attempts[0].AttemptID)
	}
	if attempts[1].FailureReason != "" {
		t.Errorf("expected empty failure reason on success record, got %q", attempts[1].FailureReason)
	}
}

func TestFindAttemptsByUser_ScanError(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"attempt_id"}).AddRow(1)

	mock.ExpectQuery("SELECT attempt_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	_, err := repo.FindAttemptsByUser(context.Background(), 7)
	if !errors.Is(err, ErrScanningRows) {
		t.Fatalf("expected ErrScanningRows, got %v", err)
	}
}
