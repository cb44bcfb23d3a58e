package templates

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/corvusHold/leasedesk/internal/config"
	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	ctrl "github.com/corvusHold/leasedesk/internal/templates/controller"
	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
	repo "github.com/corvusHold/leasedesk/internal/templates/repository"
	svc "github.com/corvusHold/leasedesk/internal/templates/service"
)

// Register wires the templates module, seeds the default templates when
// configured and registers HTTP routes. The service is returned for modules
// that record template usage.
func Register(ctx context.Context, e *echo.Echo, cfg config.Config, pub evdomain.Publisher, log zerolog.Logger) (domain.Service, error) {
	r := repo.NewMemory()
	s := svc.New(r, pub, log)
	if cfg.SeedTemplates {
		if err := svc.Seed(ctx, s); err != nil {
			return nil, err
		}
	}
	c := ctrl.New(s, mergefields.Landlord{Name: cfg.LandlordName, Phone: cfg.LandlordPhone, Email: cfg.LandlordEmail})
	c.Register(e)
	return s, nil
}
