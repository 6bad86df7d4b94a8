package http

import "github.com/gofiber/fiber/v2"

// ReadinessFunc devuelve nil si el componente está listo para atender tráfico.
type ReadinessFunc func() error

// HealthHandler sondas de vida y preparación.
type HealthHandler struct {
	service string
	checks  map[string]ReadinessFunc
}

// NewHealthHandler construye el handler. checks puede ser nil.
func NewHealthHandler(service string, checks map[string]ReadinessFunc) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Health godoc
// @Summary  Sonda de vida
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Ready godoc
// @Summary  Sonda de preparación
// @Description  No consulta a los upstreams: el BFF atiende en modo degradado aunque alguno falle.
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  503  {object}  map[string]interface{}
// @Router   /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	failed := fiber.Map{}
	for name, check := range h.checks {
		if err := check(); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready", "checks": failed})
	}
	return c.JSON(fiber.Map{"status": "ready", "service": h.service})
}
