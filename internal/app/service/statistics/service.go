package statistics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/types"
)

// DashboardStats aggregates the headline numbers for the admin dashboard.
type DashboardStats struct {
	TotalOrders   int64 `json:"total_orders"`
	PaidOrders    int64 `json:"paid_orders"`
	PendingOrders int64 `json:"pending_orders"`
	FailedOrders  int64 `json:"failed_orders"`
	// TotalRevenue is the sum of paid claim amounts, in whole KES.
	TotalRevenue  int64 `json:"total_revenue"`
	TicketsIssued int64 `json:"tickets_issued"`
}

type DailyPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// Service provides dashboard aggregates over claims and tickets.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	claims := func() *gorm.DB { return s.db.WithContext(ctx).Model(&models.PaymentClaim{}) }

	if err := claims().Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := claims().Where("status = ?", types.ClaimStatusPaid).Count(&stats.PaidOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid orders: %w", err)
	}
	if err := claims().Where("status = ?", types.ClaimStatusPendingVerification).Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := claims().Where("status = ?", types.ClaimStatusFailed).Count(&stats.FailedOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count failed orders: %w", err)
	}

	if err := claims().Where("status = ?", types.ClaimStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Ticket{}).Count(&stats.TicketsIssued).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	return &stats, nil
}

// DailyPaidSeries returns the number of claims verified as paid per day,
// oldest first, over the trailing window.
func (s *Service) DailyPaidSeries(ctx context.Context, days int) ([]DailyPoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	var results []DailyPoint
	err := s.db.WithContext(ctx).Model(&models.PaymentClaim{}).
		Select("DATE(updated_at) as date, count(*) as value").
		Where("status = ? AND updated_at >= ?", types.ClaimStatusPaid, since).
		Group("DATE(updated_at)").
		Order("date").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily paid series: %w", err)
	}
	return results, nil
}
