package status

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupDictionary(t *testing.T) (*Dictionary, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:status_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&EquipmentStatus{}, &ReservationStatus{}, &HistoryStatus{}))
	return NewDictionary(db), db
}

func TestSeedIsIdempotent(t *testing.T) {
	dict, db := setupDictionary(t)
	ctx := context.Background()

	require.NoError(t, dict.Seed(ctx))
	require.NoError(t, dict.Seed(ctx))

	var n int64
	require.NoError(t, db.Model(&ReservationStatus{}).Count(&n).Error)
	assert.Equal(t, int64(len(ReservationNames)), n)
	require.NoError(t, db.Model(&EquipmentStatus{}).Count(&n).Error)
	assert.Equal(t, int64(len(EquipmentNames)), n)
	require.NoError(t, db.Model(&HistoryStatus{}).Count(&n).Error)
	assert.Equal(t, int64(len(HistoryNames)), n)
}

func TestResolve(t *testing.T) {
	dict, _ := setupDictionary(t)
	ctx := context.Background()
	require.NoError(t, dict.Seed(ctx))

	eq, err := dict.EquipmentStatus(ctx, EquipmentReserved)
	require.NoError(t, err)
	assert.Equal(t, EquipmentReserved, eq.Name)

	pending, err := dict.ReservationStatus(ctx, ReservationPending)
	require.NoError(t, err)

	byID, err := dict.ReservationStatusByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, ReservationPending, byID.Name)

	h, err := dict.HistoryStatus(ctx, HistoryNotReturned)
	require.NoError(t, err)
	assert.Equal(t, HistoryNotReturned, h.Name)
}

func TestResolve_Unseeded(t *testing.T) {
	dict, _ := setupDictionary(t)
	ctx := context.Background()

	_, err := dict.EquipmentStatus(ctx, EquipmentIssued)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = dict.ReservationStatusByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = dict.HistoryStatus(ctx, HistoryReturned)
	assert.ErrorIs(t, err, ErrNotFound)
}
