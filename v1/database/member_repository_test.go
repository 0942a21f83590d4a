package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gov-dx-sandbox/member-service/v1/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func setupSQLiteDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGormRepository_Save_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "members" ("name","age") VALUES ($1,$2) RETURNING "id"`)).
		WithArgs("Alice", int32(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	member, err := repo.Save(context.Background(), &models.Member{Name: "Alice", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Save_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "members" SET`)).
		WithArgs("Bob", int32(41), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	member, err := repo.Save(context.Background(), &models.Member{ID: 5, Name: "Bob", Age: 41})
	require.NoError(t, err)
	assert.Equal(t, int64(5), member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Save_UpdateMissingRowDoesNotInsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "members" SET`)).
		WithArgs("Bob", int32(41), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	member, err := repo.Save(context.Background(), &models.Member{ID: 5, Name: "Bob", Age: 41})
	assert.Nil(t, member)
	assert.ErrorIs(t, err, models.ErrMemberNotFound)
	// an INSERT fallback would be an unexpected query here
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Save_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "members"`)).
		WillReturnError(errors.New("connection reset"))

	member, err := repo.Save(context.Background(), &models.Member{Name: "Alice", Age: 30})
	assert.Nil(t, member)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "members" WHERE id = $1 ORDER BY "members"."id" LIMIT $2`)).
			WithArgs(int64(3), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(3, "Carol", 25))

		member, found, err := repo.FindByID(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, models.Member{ID: 3, Name: "Carol", Age: 25}, member)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "members" WHERE id = $1`)).
			WithArgs(int64(99), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

		_, found, err := repo.FindByID(context.Background(), 99)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "members" WHERE id = $1`)).
			WillReturnError(errors.New("timeout"))

		_, found, err := repo.FindByID(context.Background(), 1)
		require.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_ExistsByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "members" WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "members" WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByID(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DeleteByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "members" WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByID(context.Background(), 6))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindAll(t *testing.T) {
	t.Run("ordered by id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "members" ORDER BY id ASC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).
				AddRow(1, "Alice", 30).
				AddRow(2, "Bob", 41))

		members, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Alice", members[0].Name)
		assert.Equal(t, "Bob", members[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "members" ORDER BY id ASC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

		members, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, members)
		assert.Empty(t, members)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_Transaction_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "members"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.Transaction(context.Background(), func(tx MemberRepository) error {
		if _, err := tx.Save(context.Background(), &models.Member{Name: "Alice", Age: 30}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_SQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormRepository(db)
	ctx := context.Background()

	first, err := repo.Save(ctx, &models.Member{Name: "Alice", Age: 30})
	require.NoError(t, err)
	second, err := repo.Save(ctx, &models.Member{Name: "Bob", Age: 41})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	first.Name = "Alicia"
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	found, ok, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alicia", found.Name)

	require.NoError(t, repo.DeleteByID(ctx, second.ID))
	exists, err := repo.ExistsByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)

	require.NoError(t, repo.Ping(ctx))

	// updating the deleted row must not bring it back
	second.Name = "Robert"
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, models.ErrMemberNotFound)
	exists, err = repo.ExistsByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormRepository_SQLiteTransactionRollback(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormRepository(db)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx MemberRepository) error {
		if _, err := tx.Save(ctx, &models.Member{Name: "Ghost", Age: 1}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
