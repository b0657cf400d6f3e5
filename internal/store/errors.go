package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create or update
	// a user fails because another account already owns the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCardNotFound is returned when a query or update targets a card
	// that does not exist in the database.
	ErrCardNotFound = errors.New("card was not found")

	// ErrShareIDAlreadyExists is returned when a card INSERT collides on
	// the globally-unique public share identifier.
	ErrShareIDAlreadyExists = errors.New("share identifier already exists")

	// ErrAttemptNotSaved is returned when an INSERT into the login-attempt
	// audit log completes without a driver error but affects zero rows.
	ErrAttemptNotSaved = errors.New("login attempt was not saved")

	// ErrNoFieldsToUpdate is returned when a partial update carries no
	// fields at all, which would produce an empty SET clause.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
