package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-bff/internal/application/dto"
	"github.com/jhoicas/storefront-bff/internal/application/storefront"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/pkg/logger"
)

// StorefrontService operaciones del agregador que expone la API (ver storefront.Aggregator).
type StorefrontService interface {
	ResolveCorrelationID(given, scope string) string
	GetTrendingProducts(ctx context.Context, limit int, correlationID string) ([]dto.EnrichedProduct, error)
	GetTrendingCategories(ctx context.Context, limit int, correlationID string) ([]dto.EnrichedCategory, error)
	GetCategories(ctx context.Context, correlationID string) ([]string, error)
	GetProductDetail(ctx context.Context, productID string, page, limit int, correlationID string) (*dto.ProductDetail, error)
}

var _ StorefrontService = (*storefront.Aggregator)(nil)

// Limits valores por defecto y tope de los parámetros de consulta.
type Limits struct {
	DefaultProductLimit  int
	DefaultCategoryLimit int
	MaxLimit             int
	DefaultReviewPage    int
	DefaultReviewLimit   int
}

// StorefrontHandler maneja las vistas del storefront (público, solo lectura).
type StorefrontHandler struct {
	svc    StorefrontService
	limits Limits
	log    *logger.Logger
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(svc StorefrontService, limits Limits, log *logger.Logger) *StorefrontHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &StorefrontHandler{svc: svc, limits: limits, log: log}
}

// TrendingProducts godoc
// @Summary      Productos en tendencia
// @Description  Productos en tendencia con disponibilidad y reseñas. Si inventario o reseñas fallan la respuesta sigue siendo 200 con esos campos en cero.
// @Tags         storefront
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de productos"  default(4)
// @Param        X-Correlation-ID  header  string  false  "Id de correlación"
// @Success      200  {array}   dto.EnrichedProduct
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/storefront/trending-products [get]
func (h *StorefrontHandler) TrendingProducts(c *fiber.Ctx) error {
	corrID := h.correlation(c, storefront.ScopeProductsTrending)
	req, ok := h.limitRequest(c, h.limits.DefaultProductLimit)
	if !ok {
		return badRequest(c, "INVALID_LIMIT", "limit debe ser un entero positivo", corrID)
	}
	out, err := h.svc.GetTrendingProducts(c.UserContext(), req.Limit, corrID)
	if err != nil {
		return h.fail(c, err, corrID)
	}
	return c.JSON(out)
}

// TrendingCategories godoc
// @Summary      Categorías en tendencia
// @Description  Categorías en tendencia con metadatos de presentación y ruta de navegación.
// @Tags         storefront
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de categorías"  default(5)
// @Param        X-Correlation-ID  header  string  false  "Id de correlación"
// @Success      200  {array}   dto.EnrichedCategory
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/storefront/trending-categories [get]
func (h *StorefrontHandler) TrendingCategories(c *fiber.Ctx) error {
	corrID := h.correlation(c, storefront.ScopeCategoriesTrending)
	req, ok := h.limitRequest(c, h.limits.DefaultCategoryLimit)
	if !ok {
		return badRequest(c, "INVALID_LIMIT", "limit debe ser un entero positivo", corrID)
	}
	out, err := h.svc.GetTrendingCategories(c.UserContext(), req.Limit, corrID)
	if err != nil {
		return h.fail(c, err, corrID)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         storefront
// @Produce      json
// @Success      200  {array}   string
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/storefront/categories [get]
func (h *StorefrontHandler) Categories(c *fiber.Ctx) error {
	corrID := h.correlation(c, storefront.ScopeCategoriesList)
	out, err := h.svc.GetCategories(c.UserContext(), corrID)
	if err != nil {
		return h.fail(c, err, corrID)
	}
	return c.JSON(out)
}

// ProductDetail godoc
// @Summary      Ficha de producto
// @Description  Producto con página de reseñas y resumen de calificación. degraded lista las secciones que no se pudieron cargar.
// @Tags         storefront
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        page   query  int     false  "Página de reseñas"  default(1)
// @Param        limit  query  int     false  "Reseñas por página"  default(10)
// @Success      200  {object}  dto.ProductDetail
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/storefront/products/{id} [get]
func (h *StorefrontHandler) ProductDetail(c *fiber.Ctx) error {
	corrID := h.correlation(c, storefront.ScopeProductDetail)
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido", corrID)
	}
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos", corrID)
	}
	if explicitNonPositive(c, "page", req.Page) {
		return badRequest(c, "INVALID_PAGE", "page debe ser un entero positivo", corrID)
	}
	if explicitNonPositive(c, "limit", req.Limit) {
		return badRequest(c, "INVALID_LIMIT", "limit debe ser un entero positivo", corrID)
	}
	req.Normalize(h.limits.DefaultReviewPage, h.limits.DefaultReviewLimit, h.limits.MaxLimit)
	out, err := h.svc.GetProductDetail(c.UserContext(), id, req.Page, req.Limit, corrID)
	if err != nil {
		return h.fail(c, err, corrID)
	}
	return c.JSON(out)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// correlation resuelve el id de correlación y lo devuelve en la cabecera de respuesta.
func (h *StorefrontHandler) correlation(c *fiber.Ctx, scope string) string {
	id := h.svc.ResolveCorrelationID(GetCorrelationID(c), scope)
	c.Set(HeaderCorrelationID, id)
	return id
}

// limitRequest ausente: def. Presente: debe ser un entero mayor que cero; se acota a MaxLimit.
func (h *StorefrontHandler) limitRequest(c *fiber.Ctx, def int) (dto.LimitRequest, bool) {
	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil || explicitNonPositive(c, "limit", req.Limit) {
		return req, false
	}
	req.Normalize(def, h.limits.MaxLimit)
	return req, req.Limit > 0
}

// explicitNonPositive el parámetro vino en la query y no es positivo. QueryParser no distingue
// un 0 explícito de un parámetro ausente.
func explicitNonPositive(c *fiber.Ctx, name string, v int) bool {
	return c.Query(name) != "" && v <= 0
}

// fail traduce el error de la capa de aplicación a respuesta HTTP.
func (h *StorefrontHandler) fail(c *fiber.Ctx, err error, corrID string) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrBatchTooLarge):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status, code = fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	}

	ev := h.log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).
		Str("correlation_id", corrID).
		Str("path", c.Path()).
		Int("status", status).
		Msg("petición storefront fallida")

	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error(), CorrelationID: corrID})
}

func badRequest(c *fiber.Ctx, code, msg, corrID string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg, CorrelationID: corrID})
}
