package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/application/catalog"
	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// CatalogHandler maneja productos, combos y actores de la red (protegido).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		BaseCost:  p.BaseCost,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toBundleResponse(b *entity.Bundle) dto.BundleResponse {
	items := make([]dto.BundleItemRequest, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BundleItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return dto.BundleResponse{
		ID:               b.ID,
		Name:             b.Name,
		Items:            items,
		MasterAgentPrice: b.MasterAgentPrice,
		AgentPrice:       b.AgentPrice,
		Active:           b.Active,
		CreatedAt:        b.CreatedAt,
	}
}

func toActorResponse(a *entity.Actor) dto.ActorResponse {
	resp := dto.ActorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Role:      a.Role,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
	if a.ParentID != nil {
		resp.ParentID = *a.ParentID
	}
	return resp
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, base_cost"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Param        limit   query  int   false  "Límite de página"
// @Param        offset  query  int   false  "Offset de página"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	products, err := h.uc.ListProducts(c.Context(), c.QueryBool("active"), page.Limit, page.Offset)
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// UpdateProductCost godoc
// @Summary      Actualizar costo base de un producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del producto"
// @Param        body  body  map[string]string  true  "base_cost"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/cost [put]
func (h *CatalogHandler) UpdateProductCost(c *fiber.Ctx) error {
	var in struct {
		BaseCost decimal.Decimal `json:"base_cost"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateProductCost(c.Context(), c.Params("id"), in.BaseCost); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "costo actualizado"})
}

// SetProductActive godoc
// @Summary      Activar o desactivar un producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del producto"
// @Param        body  body  map[string]bool    true  "active"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/active [put]
func (h *CatalogHandler) SetProductActive(c *fiber.Ctx) error {
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetProductActive(c.Context(), c.Params("id"), in.Active); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto actualizado"})
}

// ── Combos ────────────────────────────────────────────────────────────────────

// CreateBundle godoc
// @Summary      Crear combo con precios por nivel
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBundleRequest  true  "name, items, master_agent_price, agent_price"
// @Success      201   {object}  dto.BundleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bundles [post]
func (h *CatalogHandler) CreateBundle(c *fiber.Ctx) error {
	var in dto.CreateBundleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.CreateBundle(c.Context(), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBundleResponse(b))
}

// ListBundles godoc
// @Summary      Listar combos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Success      200  {array}  dto.BundleResponse
// @Router       /api/bundles [get]
func (h *CatalogHandler) ListBundles(c *fiber.Ctx) error {
	bundles, err := h.uc.ListBundles(c.Context(), c.QueryBool("active"))
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, toBundleResponse(b))
	}
	return c.JSON(out)
}

// GetBundle godoc
// @Summary      Obtener combo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del combo"
// @Success      200  {object}  dto.BundleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bundles/{id} [get]
func (h *CatalogHandler) GetBundle(c *fiber.Ctx) error {
	b, err := h.uc.GetBundle(c.Context(), c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(toBundleResponse(b))
}

// ── Actores ───────────────────────────────────────────────────────────────────

// CreateActor godoc
// @Summary      Crear actor de la red
// @Tags         network
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActorRequest  true  "name, role, parent_id"
// @Success      201   {object}  dto.ActorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/actors [post]
func (h *CatalogHandler) CreateActor(c *fiber.Ctx) error {
	var in dto.CreateActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.CreateActor(c.Context(), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toActorResponse(a))
}

// ListActors godoc
// @Summary      Listar actores activos por rol
// @Tags         network
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  true  "HQ, MASTER_AGENT, AGENT, BRANCH o MARKETER"
// @Success      200  {array}  dto.ActorResponse
// @Router       /api/actors [get]
func (h *CatalogHandler) ListActors(c *fiber.Ctx) error {
	role := c.Query("role")
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role requerido"})
	}
	actors, err := h.uc.ListActorsByRole(c.Context(), role)
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.ActorResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, toActorResponse(a))
	}
	return c.JSON(out)
}

// GetActor godoc
// @Summary      Obtener actor
// @Tags         network
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del actor"
// @Success      200  {object}  dto.ActorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/actors/{id} [get]
func (h *CatalogHandler) GetActor(c *fiber.Ctx) error {
	a, err := h.uc.GetActor(c.Context(), c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(toActorResponse(a))
}
