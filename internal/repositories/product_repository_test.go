package repository_test

import (
	"database/sql"
	"errors"
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

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return db, mock
}

var productColumns = []string{"id", "name", "price", "created_at", "updated_at"}

func TestProductRepository_CreateProduct(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`INSERT INTO products (name, price, created_at, updated_at)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		product := &models.Product{Name: "Shirt", Price: models.NewMoneyFromFloat(25)}
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(expectedSQL).
			WithArgs("Shirt", product.Price).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

		// Act
		err := repo.CreateProduct(t.Context(), product)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.WithinDuration(t, now, product.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - duplicate name", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		product := &models.Product{Name: "Shirt", Price: models.NewMoneyFromFloat(25)}

		mock.ExpectQuery(expectedSQL).
			WithArgs("Shirt", product.Price).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateProduct(t.Context(), product)

		// Assert
		require.ErrorIs(t, err, repository.ErrDuplicateEntry)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_GetProductByID(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`SELECT id, name, price, created_at, updated_at
		FROM products
		WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(expectedSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productColumns).AddRow(id.String(), "Shirt", "25.00", now, now))

		// Act
		product, err := repo.GetProductByID(t.Context(), id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Shirt", product.Name)
		assert.Equal(t, "25.00", product.Price.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		id := uuid.New()

		mock.ExpectQuery(expectedSQL).WithArgs(id).WillReturnError(sql.ErrNoRows)

		// Act
		product, err := repo.GetProductByID(t.Context(), id)

		// Assert
		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, product)
	})
}

func TestProductRepository_GetProductsByIDs(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`WHERE id = ANY($1::uuid[])`)

	t.Run("Success - missing ids are absent", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		found, missing := uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(expectedSQL).
			WithArgs(pq.Array([]string{found.String(), missing.String()})).
			WillReturnRows(sqlmock.NewRows(productColumns).AddRow(found.String(), "Shirt", "10.50", now, now))

		// Act
		products, err := repo.GetProductsByIDs(t.Context(), []uuid.UUID{found, missing})

		// Assert
		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "10.50", products[found].Price.String())
		assert.NotContains(t, products, missing)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no ids skips the query", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)

		// Act
		products, err := repo.GetProductsByIDs(t.Context(), nil)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		id := uuid.New()

		mock.ExpectQuery(expectedSQL).WillReturnError(errors.New("connection reset"))

		// Act
		products, err := repo.GetProductsByIDs(t.Context(), []uuid.UUID{id})

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)
	})
}

func TestProductRepository_ListProducts(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`FROM products
		ORDER BY created_at, name`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)
		now := time.Now()

		mock.ExpectQuery(expectedSQL).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(uuid.NewString(), "Shirt", "25.00", now, now).
				AddRow(uuid.NewString(), "Hat", "0.00", now, now))

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Hat", products[1].Name)
		assert.True(t, products[1].Price.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - empty catalog", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(expectedSQL).WillReturnRows(sqlmock.NewRows(productColumns))

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Failure - scan error", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(expectedSQL).
			WillReturnRows(sqlmock.NewRows(productColumns).AddRow("not-a-uuid", "Shirt", "1", time.Now(), time.Now()))

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)
	})
}
