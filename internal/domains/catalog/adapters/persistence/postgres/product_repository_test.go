package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestProductRepository_DeleteRemovesLinksAndRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_categories"`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_DeleteForeignKeyViolationRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_categories"`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation, Message: "update or delete on table \"products\" violates foreign key constraint"})
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	require.ErrorIs(t, err, ports.ErrIntegrityViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_DeleteMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_categories"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 1000)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_SearchByNameUsesCaseInsensitiveLike(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE UPPER(name) LIKE UPPER($1)`)).
		WithArgs("%mac\\_book%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE UPPER(name) LIKE UPPER($1) ORDER BY "name" DESC,"id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "img_url"}).
			AddRow(int64(3), "Mac_book Pro", "Lorem ipsum dolor sit amet", 1250.0, "3-big.jpg"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM product_categories AS pc JOIN categories c ON c.id = pc.category_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "id", "name"}).
			AddRow(int64(3), int64(3), "Computadores"))

	page, err := repo.SearchByName(context.Background(), " mac_book ", pagination.NewPageable(0, 12,
		pagination.Order{Property: ports.SortByName, Direction: pagination.Desc}))
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	require.Equal(t, "Mac_book Pro", page.Content[0].Name)
	require.Equal(t, []int64{3}, page.Content[0].CategoryIDs())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 1000)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
