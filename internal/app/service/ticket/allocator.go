package ticket

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/metrics"
	"github.com/waoafrica/backoffice/pkg/tool"
)

// ErrAllocationExhausted is returned when every candidate ticket number within
// the retry budget collided. The owning claim stays paid without a ticket;
// callers must surface this to an operator.
var ErrAllocationExhausted = errors.New("could not allocate unique ticket number")

// Allocator mints tickets for approved payment claims. Uniqueness of both the
// ticket number and the one-ticket-per-claim rule is enforced by the storage
// constraints, so concurrent approvals across server instances cannot
// double-issue.
type Allocator struct {
	db          *gorm.DB
	log         *zap.SugaredLogger
	maxAttempts int
	newNumber   NumberFunc
}

func NewAllocator(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) *Allocator {
	attempts := cfg.Ticket.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	return &Allocator{
		db:          db,
		log:         log,
		maxAttempts: attempts,
		newNumber:   NewNumberFunc(cfg.Ticket.Prefix),
	}
}

// Allocate returns the ticket for claim, creating it if none exists yet.
// Calling it again for the same claim returns the original ticket.
func (a *Allocator) Allocate(ctx context.Context, claim *models.PaymentClaim) (*models.Ticket, error) {
	if claim == nil {
		return nil, fmt.Errorf("nil claim")
	}

	if existing, err := a.findByClaim(ctx, claim.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		t := &models.Ticket{
			ID:             tool.GenerateUUIDV7(),
			PaymentClaimID: claim.ID,
			EventID:        claim.EventID,
			UserEmail:      claim.Email,
			FullName:       claim.FullName,
			TicketType:     claim.TicketType,
			AmountPaid:     claim.Amount,
			MpesaCode:      claim.MpesaCode,
			TicketNumber:   a.newNumber(),
		}
		err := a.db.WithContext(ctx).Create(t).Error
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to insert ticket: %w", err)
		}

		// A duplicate key is either a concurrent allocation for the same
		// claim (return its ticket) or a number collision (retry).
		existing, ferr := a.findByClaim(ctx, claim.ID)
		if ferr != nil {
			return nil, ferr
		}
		if existing != nil {
			return existing, nil
		}
		metrics.TicketNumberCollisions.Inc()
		logctx.FromCtx(ctx, a.log).Warnw("ticket number collision, retrying",
			"claim_id", claim.ID,
			"ticket_number", t.TicketNumber,
			"attempt", attempt,
		)
	}

	metrics.TicketAllocationFailures.Inc()
	return nil, fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}

func (a *Allocator) findByClaim(ctx context.Context, claimID string) (*models.Ticket, error) {
	var t models.Ticket
	err := a.db.WithContext(ctx).First(&t, "payment_claim_id = ?", claimID).Error
	if err == nil {
		return &t, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to look up ticket for claim: %w", err)
}
