package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver recibe la duración de cada petición. Lo implementa *metrics.Metrics.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, start time.Time)
}

// RequestLogger registra cada petición (método, ruta, estado, latencia) y la reporta a obs.
// obs puede ser nil. Los errores devueltos por el handler se resuelven aquí con el
// ErrorHandler de la app para conocer el estado final.
func RequestLogger(log zerolog.Logger, obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")

		if obs != nil {
			obs.ObserveRequest(c.Method(), route, status, start)
		}
		return nil
	}
}
