// internal/store/pgstore/pgstore_test.go
package pgstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/DBN92/solve-it-neat/internal/store"
)

func TestTranslateErrorUniqueViolation(t *testing.T) {
	// pgx surfaces constraint violations as *pgconn.PgError.
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	err := translateError(pgErr)
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	wrapped := translateError(errors.New("insert failed: " + pgErr.Error()))
	assert.NotErrorIs(t, wrapped, store.ErrDuplicateEmail)
}

func TestTranslateErrorNotFound(t *testing.T) {
	err := translateError(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTranslateErrorPassThrough(t *testing.T) {
	cause := errors.New("connection reset")
	assert.Equal(t, cause, translateError(cause))

	otherPg := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, otherPg, translateError(otherPg))
}
