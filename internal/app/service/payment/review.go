package payment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/metrics"
	"github.com/waoafrica/backoffice/pkg/types"
)

// TicketAllocator mints at most one ticket per claim. Implemented by the
// ticket service.
type TicketAllocator interface {
	Allocate(ctx context.Context, claim *models.PaymentClaim) (*models.Ticket, error)
}

// Notifier tells the payer about a review outcome. Implementations must never
// fail the caller; delivery problems are theirs to log.
type Notifier interface {
	ReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber, reason string)
}

// Feed records review outcomes in the back-office notification feed,
// best-effort.
type Feed interface {
	PublishReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber string)
}

// Service is the only mutator of claim status. It validates transitions,
// orders the side effects and keeps ticket issuance idempotent.
type Service struct {
	store     *Store
	allocator TicketAllocator
	notifier  Notifier
	feed      Feed
	log       *zap.SugaredLogger
}

func NewService(store *Store, allocator TicketAllocator, notifier Notifier, feed Feed, log *zap.SugaredLogger) *Service {
	return &Service{store: store, allocator: allocator, notifier: notifier, feed: feed, log: log}
}

// Store exposes the claim store for read-side consumers (handlers).
func (s *Service) Store() *Store {
	return s.store
}

type ReviewRequest struct {
	ClaimID string
	Status  string
	Reason  string
}

type ReviewResult struct {
	Status       types.ClaimStatus `json:"status"`
	TicketNumber string            `json:"ticket_number,omitempty"`
}

// ReviewPayment applies an admin's verdict to a claim.
//
// Validation happens before any write. Transitions between the three statuses
// are unrestricted (operators may re-open or correct a verdict), but entering
// paid always goes through the allocator's once-only guarantee, so a second
// approval returns the already issued ticket instead of minting another.
// A claim that was marked paid but could not get a ticket is surfaced as an
// error with the claim left paid; that state needs an operator, not a retry
// loop.
func (s *Service) ReviewPayment(ctx context.Context, req *ReviewRequest) (*ReviewResult, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	status := types.ClaimStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if status == types.ClaimStatusFailed && strings.TrimSpace(req.Reason) == "" {
		return nil, ErrMissingReason
	}

	claim, err := s.store.GetClaim(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	var confirmation *string
	if req.Reason != "" {
		confirmation = &req.Reason
	}
	if err := s.store.updateClaimStatus(ctx, claim.ID, status, confirmation); err != nil {
		return nil, err
	}
	claim.Status = status
	claim.ConfirmationMessage = confirmation

	var ticketNumber string
	if status == types.ClaimStatusPaid {
		ticket, err := s.allocator.Allocate(ctx, claim)
		if err != nil {
			// The claim is already paid; losing this error would hide
			// a paid-but-unticketed claim from operators.
			logctx.FromCtx(ctx, s.log).Errorw("ticket allocation failed for paid claim",
				"claim_id", claim.ID,
				"event_id", claim.EventID,
				"err", err,
			)
			return nil, fmt.Errorf("claim %s is paid but has no ticket: %w", claim.ID, err)
		}
		ticketNumber = ticket.TicketNumber
	}

	metrics.ReviewVerdicts.WithLabelValues(string(status)).Inc()
	s.notifier.ReviewOutcome(ctx, claim, ticketNumber, req.Reason)
	s.feed.PublishReviewOutcome(ctx, claim, ticketNumber)

	return &ReviewResult{Status: status, TicketNumber: ticketNumber}, nil
}
