package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// newMockDB wraps a sqlmock connection in sqlx for driver-level error tests.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_GetByID_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM users WHERE user_id`).WillReturnError(sql.ErrConnDone)

	user, err := repo.GetByID(context.Background(), uuid.New())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmail_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM users WHERE email`).WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.Nil(t, user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetAll_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM users ORDER BY created_at`).WillReturnError(sql.ErrConnDone)

	users, err := repo.GetAll(context.Background())
	assert.Nil(t, users)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Update_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`(?s)UPDATE users.+WHERE user_id`).WillReturnError(sql.ErrConnDone)

	err := repo.Update(context.Background(), uuid.New(), "Name", "name@example.com")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Delete_NoRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE user_id`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
