//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
)

func setupUserPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("commerce_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_SaveAndFindByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUserPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser(0, "Alex Green", "alex@gmail.com", "$2a$10$hash")
	require.NoError(t, err)
	user.Phone = "977777777"
	user.BirthDate = time.Date(1987, 12, 13, 0, 0, 0, 0, time.UTC)
	user.AddRole(domain.Role{ID: 1, Authority: "ROLE_CLIENT"})
	user.AddRole(domain.Role{ID: 2, Authority: "ROLE_ADMIN"})

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, []string{"ROLE_CLIENT", "ROLE_ADMIN"}, saved.Authorities())

	fetched, err := repo.FindByEmail(ctx, "ALEX@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, user.BirthDate, fetched.BirthDate)
}

func TestRepository_SearchUserAndRolesByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUserPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser(0, "Maria Brown", "maria@gmail.com", "$2a$10$hash")
	require.NoError(t, err)
	user.AddRole(domain.Role{ID: 1, Authority: "ROLE_CLIENT"})
	_, err = repo.Save(ctx, user)
	require.NoError(t, err)

	rows, err := repo.SearchUserAndRolesByEmail(ctx, "maria@gmail.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ports.UserDetailsProjection{Username: "maria@gmail.com", Password: "$2a$10$hash", RoleID: 1, Authority: "ROLE_CLIENT"}, rows[0])

	rows, err = repo.SearchUserAndRolesByEmail(ctx, "ghost@gmail.com")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = repo.FindByEmail(ctx, "ghost@gmail.com")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}
