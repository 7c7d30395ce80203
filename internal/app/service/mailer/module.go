package mailer

import "go.uber.org/fx"

// Module exposes the SMTP provider and dispatcher via Fx.
var Module = fx.Options(
	fx.Provide(NewSMTP),
	fx.Provide(func(p *SMTPProvider) Provider { return p }),
	fx.Provide(NewDispatcher),
)
