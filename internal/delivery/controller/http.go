package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	"github.com/corvusHold/leasedesk/internal/documents"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

type Controller struct {
	svc      domain.Service
	landlord mergefields.Landlord
	sendMW   []echo.MiddlewareFunc
}

// New builds the deliveries controller. sendMW guards the send route, e.g. a rate limiter.
func New(svc domain.Service, landlord mergefields.Landlord, sendMW ...echo.MiddlewareFunc) *Controller {
	return &Controller{svc: svc, landlord: landlord, sendMW: sendMW}
}

func (h *Controller) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	h.RegisterV1(g)
}

func (h *Controller) RegisterV1(g *echo.Group) {
	g.POST("/deliveries", h.create)
	g.GET("/deliveries/:id", h.get)
	g.PATCH("/deliveries/:id", h.update)
	g.POST("/deliveries/:id/preview", h.preview)
	g.POST("/deliveries/:id/send", h.send, h.sendMW...)
}

type recipientReq struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=40"`
}

func (r recipientReq) toDomain() domain.Recipient {
	return domain.Recipient{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type createDeliveryReq struct {
	Channel      string            `json:"channel" validate:"omitempty,oneof=email whatsapp both"`
	Recipient    recipientReq      `json:"recipient"`
	Message      string            `json:"message" validate:"max=4000"`
	TemplateType string            `json:"template_type" validate:"omitempty,oneof=lease renewal extension"`
	TemplateID   string            `json:"template_id"`
	DocumentName string            `json:"document_name"`
	Fields       mergefields.Input `json:"fields"`
}

type updateDeliveryReq struct {
	Channel      *string            `json:"channel" validate:"omitempty,oneof=email whatsapp both"`
	Recipient    *recipientReq      `json:"recipient"`
	Message      *string            `json:"message" validate:"omitempty,max=4000"`
	TemplateType *string            `json:"template_type" validate:"omitempty,oneof=lease renewal extension"`
	TemplateID   *string            `json:"template_id"`
	DocumentName *string            `json:"document_name"`
	Fields       *mergefields.Input `json:"fields"`
}

// Create Delivery godoc
// @Summary      Create delivery draft
// @Description  Opens a delivery in the drafting state
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body  createDeliveryReq  true  "draft"
// @Success      201   {object}  domain.Draft
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/deliveries [post]
func (h *Controller) create(c echo.Context) error {
	var req createDeliveryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	in := req.Fields.WithLandlordDefaults(h.landlord)
	if in.TenantName == "" {
		in.TenantName = req.Recipient.Name
	}
	fields, err := in.Fields()
	if err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	docName := req.DocumentName
	if docName == "" && fields.LeaseStartDate != nil && fields.LeaseEndDate != nil {
		docName, _ = documents.NameFor(fields.TenantName, *fields.LeaseStartDate, *fields.LeaseEndDate)
	}
	d, err := h.svc.Create(c.Request().Context(), domain.NewDraft{
		Channel:      domain.Channel(req.Channel),
		Recipient:    req.Recipient.toDomain(),
		Message:      req.Message,
		TemplateType: tdomain.DocumentType(req.TemplateType),
		TemplateID:   req.TemplateID,
		DocumentName: docName,
		Fields:       fields,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// Get Delivery godoc
// @Summary      Get delivery
// @Tags         deliveries
// @Produce      json
// @Param        id   path   string  true  "Delivery ID"
// @Success      200  {object}  domain.Draft
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/deliveries/{id} [get]
func (h *Controller) get(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Update Delivery godoc
// @Summary      Edit delivery draft
// @Description  Changes the draft and returns it to drafting. Sent deliveries cannot change.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Delivery ID"
// @Param        body  body  updateDeliveryReq  true  "changes"
// @Success      200   {object}  domain.Draft
// @Failure      400   {object}  validation.ErrorBody
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/deliveries/{id} [patch]
func (h *Controller) update(c echo.Context) error {
	var req updateDeliveryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	var p domain.Patch
	if req.Channel != nil {
		ch := domain.Channel(*req.Channel)
		p.Channel = &ch
	}
	if req.Recipient != nil {
		r := req.Recipient.toDomain()
		p.Recipient = &r
	}
	if req.TemplateType != nil {
		tt := tdomain.DocumentType(*req.TemplateType)
		p.TemplateType = &tt
	}
	if req.Fields != nil {
		f, err := req.Fields.WithLandlordDefaults(h.landlord).Fields()
		if err != nil {
			return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
		}
		p.Fields = &f
	}
	p.Message, p.TemplateID, p.DocumentName = req.Message, req.TemplateID, req.DocumentName
	d, err := h.svc.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Preview Delivery godoc
// @Summary      Preview delivery document
// @Description  Resolves the draft's template and moves the draft to previewing
// @Tags         deliveries
// @Produce      json
// @Param        id   path   string  true  "Delivery ID"
// @Success      200  {object}  tdomain.Preview
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/deliveries/{id}/preview [post]
func (h *Controller) preview(c echo.Context) error {
	p, err := h.svc.Preview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Send Delivery godoc
// @Summary      Send delivery
// @Description  Sends the document once and returns the receipt
// @Tags         deliveries
// @Produce      json
// @Param        id   path   string  true  "Delivery ID"
// @Success      200  {object}  domain.Receipt
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/v1/deliveries/{id}/send [post]
func (h *Controller) send(c echo.Context) error {
	r, err := h.svc.Send(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, tdomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadySent), errors.Is(err, domain.ErrTemplateRemoved):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}
