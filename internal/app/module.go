package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/waoafrica/backoffice/internal/app/api/server"
	"github.com/waoafrica/backoffice/internal/app/service/mailer"
	"github.com/waoafrica/backoffice/internal/app/service/notificationcenter"
	"github.com/waoafrica/backoffice/internal/app/service/payment"
	"github.com/waoafrica/backoffice/internal/app/service/statistics"
	"github.com/waoafrica/backoffice/internal/app/service/ticket"
	"github.com/waoafrica/backoffice/internal/platform/db"
	"github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	payment.Module,
	ticket.Module,
	mailer.Module,
	notificationcenter.Module,
	statistics.Module,

	// Bind the review workflow's collaborator interfaces to their
	// implementations.
	fx.Provide(func(a *ticket.Allocator) payment.TicketAllocator { return a }),
	fx.Provide(func(d *mailer.Dispatcher) payment.Notifier { return d }),
	fx.Provide(func(s *notificationcenter.Service) payment.Feed { return s }),
)
