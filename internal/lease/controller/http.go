package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	ddomain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	"github.com/corvusHold/leasedesk/internal/documents"
	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	svc "github.com/corvusHold/leasedesk/internal/lease/service"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
)

type Controller struct {
	svc    domain.Service
	drafts ddomain.Drafter
	log    zerolog.Logger
}

func New(s domain.Service, log zerolog.Logger) *Controller {
	return &Controller{svc: s, log: log}
}

// WithRenewalDrafts makes every successful renewal open a delivery draft.
func (h *Controller) WithRenewalDrafts(d ddomain.Drafter) *Controller {
	h.drafts = d
	return h
}

func (h *Controller) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	h.RegisterV1(g)
}

func (h *Controller) RegisterV1(g *echo.Group) {
	g.POST("/leases/compute", h.compute)
	g.POST("/leases/presets/:name", h.preset)
	g.GET("/leases/increase", h.increase)
	g.POST("/documents/name", h.documentName)
}

type recipientReq struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type computeReq struct {
	Lease     domain.LeaseInput `json:"lease"`
	Request   domain.Request    `json:"request"`
	Recipient recipientReq      `json:"recipient"`
}

type presetReq struct {
	Lease     domain.LeaseInput `json:"lease"`
	EndDate   string            `json:"end_date"`
	NewRent   string            `json:"new_rent"`
	Recipient recipientReq      `json:"recipient"`
}

type computeResp struct {
	Result   domain.Result  `json:"result"`
	Delivery *ddomain.Draft `json:"delivery,omitempty"`
}

type increaseResp struct {
	Rent     float64 `json:"rent"`
	Percent  float64 `json:"percent"`
	NewRent  float64 `json:"new_rent"`
	Shortcut bool    `json:"shortcut"`
}

type nameReq struct {
	TenantName string `json:"tenant_name" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

// Compute Lease godoc
// @Summary      Compute renewal or extension
// @Description  Derives the updated lease snapshot. A renewal also opens a delivery draft.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        body  body  computeReq  true  "current lease and request"
// @Success      200   {object}  computeResp
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/leases/compute [post]
func (h *Controller) compute(c echo.Context) error {
	var req computeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	return h.run(c, req.Lease, req.Request, req.Recipient)
}

// Preset godoc
// @Summary      Compute a preset renewal
// @Description  same-terms, plus-five or custom (end_date and new_rent in the body)
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        name  path  string     true  "Preset name"
// @Param        body  body  presetReq  true  "current lease"
// @Success      200   {object}  computeResp
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/leases/presets/{name} [post]
func (h *Controller) preset(c echo.Context) error {
	var req presetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	r, err := svc.Preset(c.Param("name"), svc.PresetOptions{EndDate: req.EndDate, NewRent: req.NewRent})
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	return h.run(c, req.Lease, r, req.Recipient)
}

func (h *Controller) run(c echo.Context, in domain.LeaseInput, r domain.Request, to recipientReq) error {
	ctx := c.Request().Context()
	current, err := in.Record()
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	res, err := h.svc.Compute(ctx, current, r)
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	resp := computeResp{Result: res}
	if h.drafts != nil {
		d, err := h.drafts.DraftForResult(ctx, res, ddomain.Recipient{Name: to.Name, Email: to.Email, Phone: to.Phone})
		if err != nil {
			h.log.Warn().Err(err).Str("tenant_id", current.TenantID).Msg("renewal draft failed")
		}
		resp.Delivery = d
	}
	return c.JSON(http.StatusOK, resp)
}

// Increase godoc
// @Summary      Rent increase
// @Tags         leases
// @Produce      json
// @Param        rent     query  number  true  "Current rent"
// @Param        percent  query  number  true  "Increase in percent"
// @Success      200  {object}  increaseResp
// @Failure      400  {object}  validation.ErrorBody
// @Router       /api/v1/leases/increase [get]
func (h *Controller) increase(c echo.Context) error {
	rent, err := svc.ParseRent("rent", c.QueryParam("rent"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	pct, err := strconv.ParseFloat(c.QueryParam("percent"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(domain.ValidationError{Field: "percent", Message: "must be a number"}))
	}
	next, err := svc.Increase(rent, pct)
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	return c.JSON(http.StatusOK, increaseResp{
		Rent:     rent,
		Percent:  pct,
		NewRent:  next,
		Shortcut: svc.IsShortcut(pct),
	})
}

type nameResp struct {
	Name string `json:"name"`
}

// Document Name godoc
// @Summary      Document name
// @Description  Canonical PDF name for a tenant and lease period
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  nameReq  true  "tenant and period"
// @Success      200   {object}  nameResp
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/documents/name [post]
func (h *Controller) documentName(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	name, err := documents.Name(req.TenantName, req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	return c.JSON(http.StatusOK, nameResp{Name: name})
}
