package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/waoafrica/backoffice/internal/models"
	"github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/metrics"
	"github.com/waoafrica/backoffice/pkg/types"
)

const defaultSendTimeout = 5 * time.Second

var paidBody = template.Must(template.New("paid").Parse(`
<p>Hi {{.FullName}},</p>
<p>Your payment has been verified.</p>
<p><strong>Event:</strong> {{.EventID}}</p>
<p><strong>Ticket Type:</strong> {{.TicketType}} (KES {{.Amount}})</p>
<p><strong>Ticket Number:</strong> <span style="font-weight:bold;">{{.TicketNumber}}</span></p>
<p>Keep this ticket number safe and present it at entry.</p>
`))

var failedBody = template.Must(template.New("failed").Parse(`
<p>Hi {{.FullName}},</p>
<p>We could not verify your payment.</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p>Please re-check your M-Pesa code or contact support.</p>
`))

var pendingBody = template.Must(template.New("pending").Parse(`
<p>Hi {{.FullName}},</p>
<p>Your payment is still pending verification. We will get back to you shortly.</p>
`))

type outcomeData struct {
	FullName     string
	EventID      string
	TicketType   types.TicketType
	Amount       int64
	TicketNumber string
	Reason       string
}

// Dispatcher emails payers about review outcomes. Delivery is fire-and-forget
// with a bounded timeout; a broken relay is logged and otherwise invisible to
// the review workflow.
type Dispatcher struct {
	provider Provider
	log      *zap.SugaredLogger
	timeout  time.Duration
}

func NewDispatcher(provider Provider, cfg *config.Config, log *zap.SugaredLogger) *Dispatcher {
	timeout := cfg.Email.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Dispatcher{provider: provider, log: log, timeout: timeout}
}

// ReviewOutcome notifies the payer of claim's new status. It returns
// immediately; the send happens on its own goroutine detached from the
// request's cancellation.
func (d *Dispatcher) ReviewOutcome(ctx context.Context, claim *models.PaymentClaim, ticketNumber, reason string) {
	if claim == nil {
		return
	}
	log := logctx.FromCtx(ctx, d.log)
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()
		if err := d.deliver(sendCtx, claim, ticketNumber, reason); err != nil {
			metrics.EmailFailures.Inc()
			log.Warnw("payer email failed",
				"claim_id", claim.ID,
				"to", claim.Email,
				"status", claim.Status,
				"err", err,
			)
		}
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, claim *models.PaymentClaim, ticketNumber, reason string) error {
	subject, body, err := buildMessage(claim, ticketNumber, reason)
	if err != nil {
		return err
	}
	return d.provider.Send(ctx, []string{claim.Email}, subject, body)
}

func buildMessage(claim *models.PaymentClaim, ticketNumber, reason string) (subject, body string, err error) {
	data := outcomeData{
		FullName:     claim.FullName,
		EventID:      claim.EventID,
		TicketType:   claim.TicketType,
		Amount:       claim.Amount,
		TicketNumber: ticketNumber,
		Reason:       reason,
	}
	if data.Reason == "" {
		data.Reason = "Not provided"
	}

	var tmpl *template.Template
	switch claim.Status {
	case types.ClaimStatusPaid:
		subject = "Your WAO Ticket is Confirmed"
		tmpl = paidBody
	case types.ClaimStatusFailed:
		subject = "Payment Verification Failed"
		tmpl = failedBody
	default:
		subject = "Payment Pending Verification"
		tmpl = pendingBody
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email body: %w", err)
	}
	return subject, buf.String(), nil
}
