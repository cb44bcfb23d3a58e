package delivery

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/corvusHold/leasedesk/internal/config"
	ctrl "github.com/corvusHold/leasedesk/internal/delivery/controller"
	domain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	svc "github.com/corvusHold/leasedesk/internal/delivery/service"
	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/platform/ratelimit"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

// Register wires the delivery module and registers HTTP routes. Sends are
// limited per client IP through store. The service is returned so the lease
// module can open renewal drafts.
func Register(e *echo.Echo, cfg config.Config, templates tdomain.Service, store ratelimit.Store, pub evdomain.Publisher, log zerolog.Logger) domain.Service {
	ll := mergefields.Landlord{Name: cfg.LandlordName, Phone: cfg.LandlordPhone, Email: cfg.LandlordEmail}
	s := svc.New(templates, svc.DraftOptions{Channel: domain.ChannelEmail, Landlord: ll}, pub, log)
	limit := ratelimit.Middleware(ratelimit.Policy{
		Name:   "delivery:send",
		Limit:  cfg.SendRateLimit,
		Window: cfg.SendRateWindow,
		Key:    ratelimit.KeyIP("delivery:send"),
	}, store)
	c := ctrl.New(s, ll, limit)
	c.Register(e)
	return s
}
