package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/storefront-bff/pkg/logger"
)

// Cabeceras y locals de trazabilidad.
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderCorrelationID = "X-Correlation-ID"

	LocalRequestID     = "request_id"
	LocalCorrelationID = "correlation_id"
)

// HTTPObserver recibe la duración de cada petición atendida (ver metrics.Metrics).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// RequestID asigna un id a la petición (el recibido en X-Request-Id o un UUID nuevo),
// lo guarda en c.Locals y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// CorrelationID copia el X-Correlation-ID entrante a c.Locals. Si no viene, queda vacío y
// cada handler genera uno con su propio ámbito.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get(HeaderCorrelationID); id != "" {
			c.Locals(LocalCorrelationID, id)
		}
		return c.Next()
	}
}

// RequestLogger registra una línea por petición y la observa en métricas. observer puede ser nil.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de fiber fije el status antes de medir.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", GetRequestID(c)).
			Str("correlation_id", string(c.Response().Header.Peek(HeaderCorrelationID))).
			Msg("petición atendida")
		return nil
	}
}

// GetRequestID devuelve el id de la petición (después del middleware RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// GetCorrelationID devuelve el id de correlación recibido, o "" si no vino.
func GetCorrelationID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCorrelationID).(string)
	return s
}
