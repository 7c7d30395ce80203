package mailer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/types"
)

func testClaim(status types.ClaimStatus) *models.PaymentClaim {
	return &models.PaymentClaim{
		ID:         "claim-1",
		EventID:    "wellness-gala-2026",
		FullName:   "Achieng Otieno",
		Email:      "achieng@example.com",
		TicketType: types.TicketTypeStandard,
		Amount:     1600,
		Status:     status,
	}
}

func TestBuildMessage_Paid(t *testing.T) {
	subject, body, err := buildMessage(testClaim(types.ClaimStatusPaid), "WAO-123456-78", "")
	require.NoError(t, err)
	require.Equal(t, "Your WAO Ticket is Confirmed", subject)
	require.Contains(t, body, "Achieng Otieno")
	require.Contains(t, body, "wellness-gala-2026")
	require.Contains(t, body, "Standard")
	require.Contains(t, body, "KES 1600")
	require.Contains(t, body, "WAO-123456-78")
}

func TestBuildMessage_FailedWithReason(t *testing.T) {
	subject, body, err := buildMessage(testClaim(types.ClaimStatusFailed), "", "code not found in statement")
	require.NoError(t, err)
	require.Equal(t, "Payment Verification Failed", subject)
	require.Contains(t, body, "code not found in statement")
}

func TestBuildMessage_FailedWithoutReason(t *testing.T) {
	_, body, err := buildMessage(testClaim(types.ClaimStatusFailed), "", "")
	require.NoError(t, err)
	require.Contains(t, body, "Not provided")
}

func TestBuildMessage_Pending(t *testing.T) {
	subject, body, err := buildMessage(testClaim(types.ClaimStatusPendingVerification), "", "")
	require.NoError(t, err)
	require.Equal(t, "Payment Pending Verification", subject)
	require.Contains(t, body, "pending verification")
}

type captureProvider struct {
	sent chan sentMail
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (p *captureProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	p.sent <- sentMail{to: to, subject: subject, body: htmlBody}
	return nil
}

func TestReviewOutcome_DeliversToPayer(t *testing.T) {
	provider := &captureProvider{sent: make(chan sentMail, 1)}
	cfg := &config.Config{Email: config.EmailConfig{SendTimeout: time.Second}}
	d := NewDispatcher(provider, cfg, zap.NewNop().Sugar())

	d.ReviewOutcome(context.Background(), testClaim(types.ClaimStatusPaid), "WAO-123456-78", "")

	select {
	case mail := <-provider.sent:
		require.Equal(t, []string{"achieng@example.com"}, mail.to)
		require.Equal(t, "Your WAO Ticket is Confirmed", mail.subject)
		require.Contains(t, mail.body, "WAO-123456-78")
	case <-time.After(2 * time.Second):
		t.Fatal("no mail delivered")
	}
}

type brokenProvider struct{}

func (brokenProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	return fmt.Errorf("relay timeout")
}

func TestReviewOutcome_SwallowsProviderFailure(t *testing.T) {
	cfg := &config.Config{Email: config.EmailConfig{SendTimeout: time.Second}}
	d := NewDispatcher(brokenProvider{}, cfg, zap.NewNop().Sugar())

	// Must neither panic nor block.
	d.ReviewOutcome(context.Background(), testClaim(types.ClaimStatusFailed), "", "wrong amount")
	d.ReviewOutcome(context.Background(), nil, "", "")
}
