package mailer

import "context"

// Provider delivers a single email. Implementations are expected to be slow
// and unreliable; callers decide how much they care.
type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}
