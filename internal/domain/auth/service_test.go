package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"equiptrack/internal/pkg/jwt"
)

func setupService(t *testing.T) (*Service, *jwt.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	tokens := jwt.New("test-secret", time.Hour)
	return NewService(NewRepository(db), tokens, zap.NewNop()), tokens
}

func TestCreateUserAndLogin(t *testing.T) {
	svc, tokens := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{
		Email:    "Staff@Example.com",
		Password: "secret123",
		Name:     "Staff",
		Roles:    []Role{RoleStudio},
	})
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	res, err := svc.Login(ctx, LoginRequest{Email: "staff@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, []Role{RoleStudio}, res.User.Roles)

	claims, err := tokens.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, []string{"studio"}, claims.Roles)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: "a@example.com", Password: "secret123", Name: "A", Roles: []Role{RoleUser},
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "missing@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: "x@example.com", Password: "secret123", Name: "X", Roles: []Role{"owner"},
	})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Email: "x@example.com", Password: "secret123", Name: "X", Roles: []Role{RoleAdmin},
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Email: "x@example.com", Password: "secret123", Name: "X", Roles: []Role{RoleAdmin},
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCan(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		cap    Capability
		want   bool
	}{
		{"plain user cannot manage", Caller{UserID: 1, Roles: []Role{RoleUser}}, ManageReservations, false},
		{"studio manages reservations", Caller{UserID: 1, Roles: []Role{RoleStudio}}, ManageReservations, true},
		{"admin records history", Caller{UserID: 1, Roles: []Role{RoleAdmin}}, RecordHistory, true},
		{"mixed roles", Caller{UserID: 1, Roles: []Role{RoleUser, RoleStudio}}, ManageEquipment, true},
		{"no roles", Caller{UserID: 1}, ManageReservations, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.caller, tt.cap))
		})
	}
}

func TestCallerFromNamesDropsUnknown(t *testing.T) {
	c := CallerFromNames(7, []string{"studio", "owner", "admin"})
	assert.Equal(t, int64(7), c.UserID)
	assert.Equal(t, []Role{RoleStudio, RoleAdmin}, c.Roles)
}
