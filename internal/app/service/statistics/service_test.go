package statistics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/tool"
	"github.com/waoafrica/backoffice/pkg/types"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PaymentClaim{}, &models.Ticket{}))
	return New(db), db
}

func seedClaim(t *testing.T, db *gorm.DB, status types.ClaimStatus, amount int64) *models.PaymentClaim {
	t.Helper()
	claim := &models.PaymentClaim{
		ID:         tool.GenerateUUIDV7(),
		EventID:    "wellness-gala-2026",
		FullName:   "Achieng Otieno",
		Email:      "achieng@example.com",
		Phone:      "+254700111222",
		TicketType: types.TicketTypeStandard,
		Amount:     amount,
		MpesaCode:  "QCX-" + tool.GenerateUUIDV7(),
		Status:     status,
	}
	require.NoError(t, db.Create(claim).Error)
	return claim
}

func TestDashboardStats(t *testing.T) {
	svc, db := newTestService(t)

	paid := seedClaim(t, db, types.ClaimStatusPaid, 1600)
	seedClaim(t, db, types.ClaimStatusPaid, 400)
	seedClaim(t, db, types.ClaimStatusPendingVerification, 1000)
	seedClaim(t, db, types.ClaimStatusFailed, 800)

	require.NoError(t, db.Create(&models.Ticket{
		ID:             tool.GenerateUUIDV7(),
		PaymentClaimID: paid.ID,
		EventID:        paid.EventID,
		UserEmail:      paid.Email,
		FullName:       paid.FullName,
		TicketType:     paid.TicketType,
		AmountPaid:     paid.Amount,
		MpesaCode:      paid.MpesaCode,
		TicketNumber:   "WAO-123456-78",
	}).Error)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, stats.TotalOrders)
	require.EqualValues(t, 2, stats.PaidOrders)
	require.EqualValues(t, 1, stats.PendingOrders)
	require.EqualValues(t, 1, stats.FailedOrders)
	require.EqualValues(t, 2000, stats.TotalRevenue)
	require.EqualValues(t, 1, stats.TicketsIssued)
}

func TestDashboardStats_EmptyTables(t *testing.T) {
	svc, _ := newTestService(t)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalOrders)
	require.EqualValues(t, 0, stats.TotalRevenue)
}

func TestDailyPaidSeries_TrailingWindowOnly(t *testing.T) {
	svc, db := newTestService(t)

	stale := seedClaim(t, db, types.ClaimStatusPaid, 1600)
	require.NoError(t, db.Model(&models.PaymentClaim{}).
		Where("id = ?", stale.ID).
		UpdateColumn("updated_at", time.Now().AddDate(0, 0, -10)).Error)
	seedClaim(t, db, types.ClaimStatusPaid, 400)

	series, err := svc.DailyPaidSeries(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.EqualValues(t, 1, series[0].Value)
}

func TestDailyPaidSeries(t *testing.T) {
	svc, db := newTestService(t)

	seedClaim(t, db, types.ClaimStatusPaid, 1600)
	seedClaim(t, db, types.ClaimStatusPaid, 400)
	seedClaim(t, db, types.ClaimStatusPendingVerification, 1000)

	series, err := svc.DailyPaidSeries(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.EqualValues(t, 2, series[0].Value)
}
