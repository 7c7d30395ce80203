package payment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/tool"
	"github.com/waoafrica/backoffice/pkg/types"
)

// Store owns durable access to payment claims. It performs plain CRUD; the
// status state machine lives in Service.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

type ListClaimsRequest struct {
	Filters []*types.CommonFilter `json:"filters"`
	From    int                   `json:"from"`
	Size    int                   `json:"size"`
}

type ListClaimsResponse struct {
	Items []*models.PaymentClaim `json:"items"`
	Total int64                  `json:"total"`
}

// ListClaims returns claims newest first, optionally filtered.
func (s *Store) ListClaims(ctx context.Context, req *ListClaimsRequest) (*ListClaimsResponse, error) {
	if req == nil {
		req = &ListClaimsRequest{}
	}
	if req.Size <= 0 {
		req.Size = 50
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.PaymentClaim{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payment claims: %w", err)
	}

	var rows []*models.PaymentClaim
	q := tx.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}, Desc: true}}}).Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment claims: %w", err)
	}

	return &ListClaimsResponse{Items: rows, Total: total}, nil
}

// GetClaim loads a single claim by id.
func (s *Store) GetClaim(ctx context.Context, id string) (*models.PaymentClaim, error) {
	var claim models.PaymentClaim
	err := s.db.WithContext(ctx).First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClaimNotFound, id)
		}
		return nil, fmt.Errorf("failed to load payment claim: %w", err)
	}
	return &claim, nil
}

type InsertClaimRequest struct {
	EventID    string           `json:"event_id"`
	FullName   string           `json:"full_name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	TicketType types.TicketType `json:"ticket_type"`
	Amount     int64            `json:"amount"`
	MpesaCode  string           `json:"mpesa_code"`
}

func (r *InsertClaimRequest) validate() error {
	if r.EventID == "" || r.FullName == "" || r.Email == "" || r.Phone == "" || r.MpesaCode == "" {
		return fmt.Errorf("event_id, full_name, email, phone and mpesa_code are required")
	}
	if !r.TicketType.Valid() {
		return fmt.Errorf("unknown ticket type: %q", r.TicketType)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// InsertClaim creates a claim in pending_verification. Duplicate M-Pesa codes
// are rejected by the unique constraint, not a pre-check, so concurrent
// submissions of the same code cannot both land.
func (s *Store) InsertClaim(ctx context.Context, req *InsertClaimRequest) (*models.PaymentClaim, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	claim := &models.PaymentClaim{
		ID:         tool.GenerateUUIDV7(),
		EventID:    req.EventID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		TicketType: req.TicketType,
		Amount:     req.Amount,
		MpesaCode:  req.MpesaCode,
		Status:     types.ClaimStatusPendingVerification,
	}
	if err := s.db.WithContext(ctx).Create(claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMpesaCode, req.MpesaCode)
		}
		return nil, fmt.Errorf("failed to insert payment claim: %w", err)
	}
	return claim, nil
}

// updateClaimStatus is a plain field update; transition rules are enforced by
// Service before this is called.
func (s *Store) updateClaimStatus(ctx context.Context, id string, status types.ClaimStatus, confirmationMessage *string) error {
	err := s.db.WithContext(ctx).Model(&models.PaymentClaim{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":               status,
			"confirmation_message": confirmationMessage,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	return nil
}
