package auth_test

import (
	"context"
	"testing"
	"time"

	"disasterhub/core/token"
	"disasterhub/feature/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at"})
}

func TestLogin(t *testing.T) {
	db, mock := setupMockDB(t)
	tokens := token.NewService("test_secret", time.Hour)
	svc := auth.NewService(db, tokens, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("netrunnerX", "pass123").
		WillReturnRows(userRows().AddRow(1, "netrunnerX", "pass123", "admin", time.Now()))

	raw, role, err := svc.Login(context.Background(), "netrunnerX", "pass123")
	assert.NoError(t, err)
	assert.Equal(t, "admin", role)

	claims, err := tokens.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "netrunnerX", claims.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginInvalidCredentials(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := auth.NewService(db, token.NewService("test_secret", time.Hour), zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

	_, _, err := svc.Login(context.Background(), "netrunnerX", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	db, mock := setupMockDB(t)
	tokens := token.NewService("test_secret", time.Hour)
	svc := auth.NewService(db, tokens, zap.NewNop())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	raw, err := svc.Register(context.Background(), "citizen1", "pass123", "citizen")
	assert.NoError(t, err)

	claims, err := tokens.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "citizen", claims.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterInvalidRole(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := auth.NewService(db, token.NewService("test_secret", time.Hour), zap.NewNop())

	_, err := svc.Register(context.Background(), "citizen1", "pass123", "superuser")
	assert.ErrorIs(t, err, auth.ErrInvalidRole)
}

func TestRegisterUsernameTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := auth.NewService(db, token.NewService("test_secret", time.Hour), zap.NewNop())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), "netrunnerX", "pass123", "citizen")
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)
}
