package history

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

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/status"
)

type fixture struct {
	db        *gorm.DB
	svc       *Service
	repo      *Repository
	equipment *equipment.Repository
	item      *equipment.Equipment
	user      *auth.User
	staff     auth.Caller
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:history_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&status.EquipmentStatus{}, &status.ReservationStatus{}, &status.HistoryStatus{},
		&auth.User{}, &equipment.Equipment{}, &History{},
	))

	ctx := context.Background()
	dict := status.NewDictionary(db)
	require.NoError(t, dict.Seed(ctx))

	user := &auth.User{Email: "user@example.com", PasswordHash: "x", Name: "User", Roles: []auth.Role{auth.RoleUser}}
	staff := &auth.User{Email: "staff@example.com", PasswordHash: "x", Name: "Staff", Roles: []auth.Role{auth.RoleStudio}}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(staff).Error)

	equipmentRepo := equipment.NewRepository(db)
	item, err := equipment.NewService(db, equipmentRepo, dict, zap.NewNop()).
		Create(ctx, equipment.CreateRequest{Name: "Tripod", SerialNumber: "T-1"})
	require.NoError(t, err)

	repo := NewRepository(db)
	svc := NewService(db, repo, NewRecorder(repo, dict), equipmentRepo, auth.NewRepository(db), dict, zap.NewNop())

	return &fixture{
		db:        db,
		svc:       svc,
		repo:      repo,
		equipment: equipmentRepo,
		item:      item,
		user:      user,
		staff:     auth.Caller{UserID: staff.ID, Roles: staff.Roles},
	}
}

func (f *fixture) equipmentStatus(t *testing.T) status.EquipmentName {
	t.Helper()
	e, err := f.equipment.GetByID(context.Background(), f.item.ID)
	require.NoError(t, err)
	return e.StatusName()
}

func TestRecordIssuanceMovesEquipment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	date := time.Date(2025, 1, 10, 11, 0, 0, 0, time.UTC)

	h, err := f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, Status: "not_returned", Date: date,
	})
	require.NoError(t, err)
	assert.Equal(t, f.staff.UserID, h.ResponsibleID)
	assert.Equal(t, status.HistoryNotReturned, h.Status.Name)
	assert.Equal(t, status.EquipmentIssued, f.equipmentStatus(t))

	_, err = f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, Status: "returned", Date: date.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, status.EquipmentAvailable, f.equipmentStatus(t))

	n, err := f.repo.CountByEquipment(ctx, f.item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRecordCancelledLeavesEquipment(t *testing.T) {
	f := setup(t)

	_, err := f.svc.RecordIssuance(context.Background(), f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, Status: "cancelled", Date: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, status.EquipmentAvailable, f.equipmentStatus(t))
}

func TestRecordIssuanceRejectsPlainUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.RecordIssuance(ctx, auth.Caller{UserID: f.user.ID, Roles: []auth.Role{auth.RoleUser}}, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, Status: "returned", Date: time.Now(),
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	n, err := f.repo.CountByEquipment(ctx, f.item.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordIssuanceNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: 999, UserID: f.user.ID, Status: "returned", Date: time.Now(),
	})
	assert.ErrorIs(t, err, equipment.ErrNotFound)

	_, err = f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: 999, Status: "returned", Date: time.Now(),
	})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, Status: "lost", Date: time.Now(),
	})
	assert.ErrorIs(t, err, status.ErrNotFound)

	n, err := f.repo.CountByEquipment(ctx, f.item.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, status.EquipmentAvailable, f.equipmentStatus(t))
}

func TestGet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	h, err := f.svc.RecordIssuance(ctx, f.staff, RecordRequest{
		EquipmentID: f.item.ID, UserID: f.user.ID, ResponsibleID: f.user.ID, Status: "rejected", Date: time.Now(),
	})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, got.ResponsibleID)
	assert.Equal(t, status.HistoryRejected, got.Status.Name)

	_, err = f.svc.Get(ctx, h.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}
