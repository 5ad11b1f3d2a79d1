package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	t.Run("pgconn unique violation", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
		assert.True(t, isDuplicateKey(err))
	})

	t.Run("pgconn wrapped by gorm", func(t *testing.T) {
		err := fmt.Errorf("create failed: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, isDuplicateKey(err))
	})

	t.Run("pgconn other sqlstate", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503", Message: "foreign key violation"}
		assert.False(t, isDuplicateKey(err))
	})

	t.Run("string fallback", func(t *testing.T) {
		assert.True(t, isDuplicateKey(errors.New("ERROR: duplicate key value violates unique constraint \"uq_attendance_session_member\" (SQLSTATE 23505)")))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.False(t, isDuplicateKey(errors.New("connection refused")))
		assert.False(t, isDuplicateKey(nil))
	})
}
