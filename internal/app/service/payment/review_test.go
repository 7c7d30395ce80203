package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waoafrica/backoffice/internal/app/service/mailer"
	"github.com/waoafrica/backoffice/internal/app/service/ticket"
	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/types"
)

var ticketNumberRe = regexp.MustCompile(`^WAO-\d{6}-\d{2}$`)

type stubNotifier struct {
	calls int
}

func (n *stubNotifier) ReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber, reason string) {
	n.calls++
}

type nopFeed struct{}

func (nopFeed) PublishReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber string) {
}

func newReviewService(t *testing.T) (*Service, *Store, *stubNotifier) {
	t.Helper()
	db := newTestDB(t)
	store := NewStore(db)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{Ticket: config.TicketConfig{Prefix: "WAO", MaxAttempts: 5}}
	allocator := ticket.NewAllocator(db, cfg, log)
	notifier := &stubNotifier{}
	return NewService(store, allocator, notifier, nopFeed{}, log), store, notifier
}

func ticketCount(t *testing.T, store *Store, claimID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, store.db.Model(&models.Ticket{}).Where("payment_claim_id = ?", claimID).Count(&count).Error)
	return count
}

func TestReviewPayment_ApprovalIssuesTicket(t *testing.T) {
	svc, store, notifier := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	res, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusPaid, res.Status)
	require.Regexp(t, ticketNumberRe, res.TicketNumber)

	stored, err := store.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusPaid, stored.Status)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))
	require.Equal(t, 1, notifier.calls)
}

func TestReviewPayment_SecondApprovalReturnsSameTicket(t *testing.T) {
	svc, store, _ := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	first, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)
	second, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)

	require.Equal(t, first.TicketNumber, second.TicketNumber)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))
}

func TestReviewPayment_ReopenThenApproveKeepsSingleTicket(t *testing.T) {
	svc, store, _ := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	first, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)

	// Operators may re-open a verdict; the already issued ticket survives.
	res, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "pending_verification"})
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusPendingVerification, res.Status)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))

	again, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)
	require.Equal(t, first.TicketNumber, again.TicketNumber)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))
}

func TestReviewPayment_FailedRequiresReason(t *testing.T) {
	svc, store, notifier := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	for _, reason := range []string{"", "   ", "\t"} {
		_, err = svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "failed", Reason: reason})
		require.True(t, errors.Is(err, ErrMissingReason), "reason %q", reason)
	}

	stored, err := store.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusPendingVerification, stored.Status)
	require.EqualValues(t, 0, ticketCount(t, store, claim.ID))
	require.Equal(t, 0, notifier.calls)
}

func TestReviewPayment_FailedWithReason(t *testing.T) {
	svc, store, _ := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	res, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "failed", Reason: "code not found in statement"})
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusFailed, res.Status)
	require.Empty(t, res.TicketNumber)

	stored, err := store.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusFailed, stored.Status)
	require.NotNil(t, stored.ConfirmationMessage)
	require.Equal(t, "code not found in statement", *stored.ConfirmationMessage)
}

func TestReviewPayment_FailedThenApproved(t *testing.T) {
	svc, store, _ := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	_, err = svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "failed", Reason: "wrong amount"})
	require.NoError(t, err)

	res, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)
	require.Regexp(t, ticketNumberRe, res.TicketNumber)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))
}

func TestReviewPayment_InvalidStatusRejectedBeforeWrite(t *testing.T) {
	svc, store, _ := newReviewService(t)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	_, err = svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "refunded"})
	require.True(t, errors.Is(err, ErrInvalidStatus))

	stored, err := store.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	require.Equal(t, types.ClaimStatusPendingVerification, stored.Status)
	require.EqualValues(t, 0, ticketCount(t, store, claim.ID))
}

func TestReviewPayment_UnknownClaim(t *testing.T) {
	svc, _, _ := newReviewService(t)

	_, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: "no-such-id", Status: "paid"})
	require.True(t, errors.Is(err, ErrClaimNotFound))
}

type failingProvider struct{}

func (failingProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	return fmt.Errorf("smtp relay down")
}

func TestReviewPayment_SurvivesBrokenMailer(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{Ticket: config.TicketConfig{Prefix: "WAO", MaxAttempts: 5}}
	allocator := ticket.NewAllocator(db, cfg, log)
	dispatcher := mailer.NewDispatcher(failingProvider{}, cfg, log)
	svc := NewService(store, allocator, dispatcher, nopFeed{}, log)

	claim, err := store.InsertClaim(context.Background(), newClaimRequest("QCX1Y2Z3"))
	require.NoError(t, err)

	res, err := svc.ReviewPayment(context.Background(), &ReviewRequest{ClaimID: claim.ID, Status: "paid"})
	require.NoError(t, err)
	require.Regexp(t, ticketNumberRe, res.TicketNumber)
	require.EqualValues(t, 1, ticketCount(t, store, claim.ID))
}
