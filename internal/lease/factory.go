package lease

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/corvusHold/leasedesk/internal/config"
	ddomain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	ctrl "github.com/corvusHold/leasedesk/internal/lease/controller"
	svc "github.com/corvusHold/leasedesk/internal/lease/service"
)

// Register wires the lease module and registers HTTP routes. Renewals open a
// delivery draft through drafts.
func Register(e *echo.Echo, cfg config.Config, drafts ddomain.Drafter, pub evdomain.Publisher, log zerolog.Logger) {
	calc := svc.Calculator{DurationToleranceDays: cfg.DurationToleranceDays}
	s := svc.New(calc, pub, log)
	c := ctrl.New(s, log).WithRenewalDrafts(drafts)
	c.Register(e)
}
