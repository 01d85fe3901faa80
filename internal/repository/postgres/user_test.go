package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckbat/ScanCard/internal/model"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username index",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			want: model.ErrUsernameTaken,
		},
		{
			name: "email index",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			want: model.ErrEmailTaken,
		},
		{
			name: "other unique index",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "something_else"},
			want: model.ErrConflict,
		},
		{
			name: "non-unique pg error",
			err:  &pgconn.PgError{Code: "23503"},
			want: nil,
		},
		{
			name: "plain error",
			err:  assert.AnError,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, uniqueViolation(tt.err))
		})
	}
}
