package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`INSERT INTO users (email, password, name, created_at, updated_at)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()
		now := time.Now()
		user := &models.User{Email: "a@example.com", Password: "hash", Name: "Alice"}

		mock.ExpectQuery(expectedSQL).
			WithArgs("a@example.com", "hash", "Alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

		// Act
		err := repo.CreateUser(t.Context(), user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - duplicate email", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(expectedSQL).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateUser(t.Context(), &models.User{Email: "a@example.com"})

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
	})
}

func TestUserRepository_Lookup(t *testing.T) {
	t.Run("GetUserByEmail - Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1`)).
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "created_at", "updated_at"}).
				AddRow(id.String(), "a@example.com", "hash", "Alice", now, now))

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "a@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "hash", user.Password)
	})

	t.Run("GetUserByID - Not found", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).WithArgs(id).WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByID(t.Context(), id)

		// Assert
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
