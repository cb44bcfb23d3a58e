package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

type Controller struct {
	svc      domain.Service
	landlord mergefields.Landlord
	now      func() time.Time
}

// New builds the templates controller. landlord fills blank landlord fields
// on previews and ad-hoc resolution.
func New(svc domain.Service, landlord mergefields.Landlord) *Controller {
	return &Controller{svc: svc, landlord: landlord, now: time.Now}
}

func (h *Controller) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	h.RegisterV1(g)
}

func (h *Controller) RegisterV1(g *echo.Group) {
	g.GET("/templates", h.list)
	g.POST("/templates", h.create)
	g.GET("/templates/:id", h.get)
	g.DELETE("/templates/:id", h.remove)
	g.POST("/templates/:id/preview", h.preview)
	g.GET("/merge-fields", h.vocabulary)
	g.POST("/merge-fields/resolve", h.resolve)
}

type createTemplateReq struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=1000"`
	DocumentType string `json:"document_type" validate:"omitempty,oneof=lease renewal extension"`
	Body         string `json:"body" validate:"required"`
	Size         int64  `json:"size" validate:"gte=0"`
}

type listQuery struct {
	DocumentType string `query:"document_type"`
}

type listResponse struct {
	Items []domain.Template `json:"items"`
	Total int               `json:"total"`
}

type resolveReq struct {
	Template string            `json:"template" validate:"required"`
	Fields   mergefields.Input `json:"fields"`
}

// List Templates godoc
// @Summary      List templates
// @Description  Lists stored templates, optionally filtered by document type
// @Tags         templates
// @Produce      json
// @Param        document_type  query  string  false  "lease|renewal|extension"
// @Success      200  {object}  listResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/templates [get]
func (h *Controller) list(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	dt := domain.DocumentType(q.DocumentType)
	if dt != "" && !domain.IsAllowedDocumentType(dt) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document_type"})
	}
	items, err := h.svc.List(c.Request().Context(), dt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if items == nil {
		items = []domain.Template{}
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: len(items)})
}

// Create Template godoc
// @Summary      Upload template
// @Description  Stores a lease template body with merge tokens
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body  createTemplateReq  true  "template"
// @Success      201   {object}  domain.Template
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/templates [post]
func (h *Controller) create(c echo.Context) error {
	var req createTemplateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	t, err := h.svc.Add(c.Request().Context(), domain.NewTemplate{
		Name:         req.Name,
		Description:  req.Description,
		DocumentType: domain.DocumentType(req.DocumentType),
		Body:         req.Body,
		Size:         req.Size,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

// Get Template godoc
// @Summary      Get template
// @Tags         templates
// @Produce      json
// @Param        id   path   string  true  "Template ID"
// @Success      200  {object}  domain.Template
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/templates/{id} [get]
func (h *Controller) get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete Template godoc
// @Summary      Delete template
// @Tags         templates
// @Param        id   path   string  true  "Template ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/templates/{id} [delete]
func (h *Controller) remove(c echo.Context) error {
	if err := h.svc.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return notFoundOr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Preview Template godoc
// @Summary      Preview template
// @Description  Resolves the stored body against the supplied fields. Usage count is not changed.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Template ID"
// @Param        body  body  mergefields.Input  true  "fields"
// @Success      200   {object}  domain.Preview
// @Failure      400   {object}  validation.ErrorBody
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/templates/{id}/preview [post]
func (h *Controller) preview(c echo.Context) error {
	var in mergefields.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	fields, bad := h.fields(c, in)
	if bad != nil {
		return c.JSON(http.StatusBadRequest, bad)
	}
	p, err := h.svc.Preview(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Merge Fields godoc
// @Summary      List merge fields
// @Tags         templates
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/merge-fields [get]
func (h *Controller) vocabulary(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"fields": mergefields.Vocabulary()})
}

// Resolve godoc
// @Summary      Resolve text
// @Description  Replaces merge tokens in arbitrary text
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body  resolveReq  true  "template and fields"
// @Success      200   {object}  domain.Preview
// @Failure      400   {object}  validation.ErrorBody
// @Router       /api/v1/merge-fields/resolve [post]
func (h *Controller) resolve(c echo.Context) error {
	var req resolveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	fields, bad := h.fields(c, req.Fields)
	if bad != nil {
		return c.JSON(http.StatusBadRequest, bad)
	}
	return c.JSON(http.StatusOK, domain.Preview{
		Body:    mergefields.Resolve(req.Template, fields),
		Blank:   mergefields.Blank(req.Template, fields),
		Unknown: mergefields.Unknown(req.Template),
	})
}

// fields validates and converts in. A non-nil body is the 400 response to send.
func (h *Controller) fields(c echo.Context, in mergefields.Input) (mergefields.Fields, any) {
	if err := c.Validate(&in); err != nil {
		return mergefields.Fields{}, validation.ErrorResponse(err)
	}
	f, err := in.WithLandlordDefaults(h.landlord).Fields()
	if err != nil {
		return mergefields.Fields{}, validation.ErrorResponse(err)
	}
	if f.CurrentDate == nil {
		now := h.now().UTC()
		f.CurrentDate = &now
	}
	return f, nil
}

func notFoundOr(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
