package notificationcenter

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/tool"
	"github.com/waoafrica/backoffice/pkg/types"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Service maintains the in-app notification feed shown on the admin dashboard.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Publish asynchronously persists a feed entry. Nil input is ignored and
// failures are logged only; the feed is never allowed to fail its caller.
func (s *Service) Publish(ctx context.Context, n *models.AdminNotification) {
	log := logctx.FromCtx(ctx, s.log)
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if n == nil {
			return
		}
		if n.ID == "" {
			n.ID = tool.GenerateUUIDV7()
		}
		if n.Type == "" {
			n.Type = "info"
		}
		if n.Source == "" {
			n.Source = "system"
		}
		if err := s.db.WithContext(saveCtx).Create(n).Error; err != nil {
			log.Errorw("failed to save admin notification", "title", n.Title, "err", err)
		}
	}()
}

// PublishReviewOutcome records a payment review verdict in the feed.
func (s *Service) PublishReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber string) {
	if claim == nil {
		return
	}
	var title, message, kind string
	switch claim.Status {
	case types.ClaimStatusPaid:
		title = "Payment verified"
		message = fmt.Sprintf("%s's payment for %s was verified, ticket %s issued.", claim.FullName, claim.EventID, ticketNumber)
		kind = "success"
	case types.ClaimStatusFailed:
		title = "Payment rejected"
		message = fmt.Sprintf("%s's payment for %s failed verification.", claim.FullName, claim.EventID)
		kind = "warning"
	default:
		title = "Payment re-opened"
		message = fmt.Sprintf("%s's payment for %s is pending verification again.", claim.FullName, claim.EventID)
		kind = "info"
	}
	s.Publish(ctx, &models.AdminNotification{
		Title:   title,
		Message: message,
		Type:    kind,
		Source:  "payments",
		Payload: datatypes.NewJSONType(&models.AdminNotificationPayload{
			PaymentClaimID: claim.ID,
			EventID:        claim.EventID,
			TicketNumber:   ticketNumber,
			Status:         string(claim.Status),
		}),
	})
}

type ListResponse struct {
	Items  []*models.AdminNotification `json:"items"`
	Total  int64                       `json:"total"`
	Unread int64                       `json:"unread"`
}

// List returns feed entries newest first.
func (s *Service) List(ctx context.Context, limit, offset int) (*ListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	feed := func() *gorm.DB { return s.db.WithContext(ctx).Model(&models.AdminNotification{}) }

	var total int64
	if err := feed().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}
	var unread int64
	if err := feed().Where("is_read = ?", false).Count(&unread).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	var rows []*models.AdminNotification
	if err := feed().Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return &ListResponse{Items: rows, Total: total, Unread: unread}, nil
}

// MarkRead flags a single entry as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
	}
	return nil
}

// MarkAllRead flags every unread entry as read.
func (s *Service) MarkAllRead(ctx context.Context) error {
	err := s.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
